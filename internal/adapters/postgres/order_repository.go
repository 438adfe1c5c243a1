package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"cryptofolio/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

// GetOrders returns executed fills newest first; asset filters by asset_from when set.
func (r *OrderRepository) GetOrders(ctx context.Context, userID int64, asset string) ([]domain.OrderFill, error) {
	const q = `
		select user_id, order_id, symbol, asset_from, asset_to, side,
		       price::text, amount::text, spent::text, trade_time
		from orders
		where user_id = $1 and amount <> 0 and ($2::text = '' or asset_from = $2)
		order by order_id desc, symbol;
	`
	rows, err := r.pool.Query(ctx, q, userID, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders of user %d: %w", userID, err)
	}
	defer rows.Close()

	fills := make([]domain.OrderFill, 0, 64)
	for rows.Next() {
		var f domain.OrderFill
		var side, price, amount, spent string
		if err = rows.Scan(&f.UserID, &f.OrderID, &f.Symbol, &f.AssetFrom, &f.AssetTo, &side,
			&price, &amount, &spent, &f.Time); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		f.Side = domain.Side(side)
		if f.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("bad price of order %d: %w", f.OrderID, err)
		}
		if f.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("bad amount of order %d: %w", f.OrderID, err)
		}
		if f.Spent, err = decimal.NewFromString(spent); err != nil {
			return nil, fmt.Errorf("bad spent of order %d: %w", f.OrderID, err)
		}
		fills = append(fills, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return fills, nil
}

type orderRow struct {
	UserID    int64  `json:"user_id"`
	OrderID   int64  `json:"order_id"`
	Symbol    string `json:"symbol"`
	AssetFrom string `json:"asset_from"`
	AssetTo   string `json:"asset_to"`
	Side      string `json:"side"`
	Price     string `json:"price"`
	Amount    string `json:"amount"`
	Spent     string `json:"spent"`
	Time      int64  `json:"trade_time"`
}

// InsertOrders appends fills in one statement; rows already present are skipped.
func (r *OrderRepository) InsertOrders(ctx context.Context, fills []domain.OrderFill) (int64, error) {
	if len(fills) == 0 {
		return 0, nil
	}
	payload := make([]orderRow, 0, len(fills))
	for _, f := range fills {
		payload = append(payload, orderRow{
			UserID:    f.UserID,
			OrderID:   f.OrderID,
			Symbol:    f.Symbol,
			AssetFrom: f.AssetFrom,
			AssetTo:   f.AssetTo,
			Side:      string(f.Side),
			Price:     f.Price.String(),
			Amount:    f.Amount.String(),
			Spent:     f.Spent.String(),
			Time:      f.Time,
		})
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal orders: %w", err)
	}

	const q = `
		insert into orders(user_id, order_id, symbol, asset_from, asset_to, side, price, amount, spent, trade_time)
		select ir.user_id, ir.order_id, ir.symbol, ir.asset_from, ir.asset_to, ir.side, ir.price, ir.amount, ir.spent, ir.trade_time
		from json_to_recordset($1::json) as ir(
			user_id bigint, order_id bigint, symbol text, asset_from text, asset_to text,
			side text, price numeric, amount numeric, spent numeric, trade_time bigint
		)
		on conflict (user_id, symbol, order_id) do nothing;
	`
	tag, err := r.pool.Exec(ctx, q, json.RawMessage(payloadJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert %d orders: %w", len(fills), err)
	}
	return tag.RowsAffected(), nil
}

// GetCursors returns, per symbol the user has traded, the newest stored order id.
func (r *OrderRepository) GetCursors(ctx context.Context, userID int64) ([]domain.OrderCursor, error) {
	const q = `
		select symbol, asset_from, asset_to, max(order_id)
		from orders
		where user_id = $1
		group by symbol, asset_from, asset_to
		order by symbol;
	`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order cursors of user %d: %w", userID, err)
	}
	defer rows.Close()

	cursors := make([]domain.OrderCursor, 0, 16)
	for rows.Next() {
		var c domain.OrderCursor
		if err = rows.Scan(&c.Symbol, &c.AssetFrom, &c.AssetTo, &c.LastOrderID); err != nil {
			return nil, fmt.Errorf("failed to scan order cursor: %w", err)
		}
		cursors = append(cursors, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order cursors: %w", err)
	}
	return cursors, nil
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}
