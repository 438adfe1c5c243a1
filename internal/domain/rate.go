package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is the latest known price of a trading pair, e.g. BTCUSDT.
type Rate struct {
	Symbol    string
	Price     decimal.Decimal
	UpdatedAt time.Time
}

// Symbol glues an asset and its quote into an exchange pair symbol.
func Symbol(asset, quote string) string {
	return asset + quote
}
