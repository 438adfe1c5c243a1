package domain

import "github.com/shopspring/decimal"

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderFill is one executed (possibly partial) trade imported from the exchange.
type OrderFill struct {
	UserID    int64
	OrderID   int64
	Symbol    string
	AssetFrom string
	AssetTo   string
	Side      Side
	Price     decimal.Decimal
	Amount    decimal.Decimal
	Spent     decimal.Decimal
	Time      int64 // ms epoch as reported by the exchange
}

// IsNoop reports fills that never executed; they are invisible to every read.
func (o OrderFill) IsNoop() bool {
	return o.Amount.IsZero()
}

// ExchangeOrder is an order as returned by the exchange, before it is bound
// to a user and to the asset/quote split of its symbol.
type ExchangeOrder struct {
	OrderID int64
	Symbol  string
	Side    Side
	Price   decimal.Decimal
	Amount  decimal.Decimal
	Spent   decimal.Decimal
	Time    int64
}

func (o ExchangeOrder) ToFill(userID int64, assetFrom, assetTo string) OrderFill {
	return OrderFill{
		UserID:    userID,
		OrderID:   o.OrderID,
		Symbol:    o.Symbol,
		AssetFrom: assetFrom,
		AssetTo:   assetTo,
		Side:      o.Side,
		Price:     o.Price,
		Amount:    o.Amount,
		Spent:     o.Spent,
		Time:      o.Time,
	}
}

// OrderCursor is the newest fill already stored for one user and symbol.
type OrderCursor struct {
	Symbol      string
	AssetFrom   string
	AssetTo     string
	LastOrderID int64
}
