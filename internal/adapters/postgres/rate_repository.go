package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cryptofolio/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type RateRepository struct {
	pool *pgxpool.Pool
}

func (r *RateRepository) GetBySymbol(ctx context.Context, symbol string) (domain.Rate, error) {
	const q = `select symbol, price::text, updated_at from rates where symbol = $1;`

	rate, err := scanRate(r.pool.QueryRow(ctx, q, symbol))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Rate{}, domain.ErrRateNotFound
		}
		return domain.Rate{}, fmt.Errorf("failed to select rate for %q: %w", symbol, err)
	}
	return rate, nil
}

func (r *RateRepository) GetBySymbols(ctx context.Context, symbols []string) ([]domain.Rate, error) {
	if len(symbols) == 0 {
		return []domain.Rate{}, nil
	}
	const q = `select symbol, price::text, updated_at from rates where symbol = any($1);`
	return r.query(ctx, q, symbols)
}

func (r *RateRepository) GetAll(ctx context.Context) ([]domain.Rate, error) {
	const q = `select symbol, price::text, updated_at from rates order by symbol;`
	return r.query(ctx, q)
}

type rateRow struct {
	Symbol    string    `json:"symbol"`
	Price     string    `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Upsert stores the latest price of every symbol in one statement.
func (r *RateRepository) Upsert(ctx context.Context, rates []domain.Rate) error {
	if len(rates) == 0 {
		return nil
	}
	payload := make([]rateRow, 0, len(rates))
	for _, rate := range rates {
		updatedAt := rate.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		payload = append(payload, rateRow{rate.Symbol, rate.Price.String(), updatedAt})
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}

	const q = `
		insert into rates(symbol, price, updated_at)
		select ir.symbol, ir.price, ir.updated_at
		from json_to_recordset($1::json) as ir(symbol text, price numeric, updated_at timestamptz)
		on conflict (symbol) do update
		  set price = excluded.price, updated_at = excluded.updated_at;
	`
	if _, err = r.pool.Exec(ctx, q, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to upsert %d rates: %w", len(rates), err)
	}
	return nil
}

func (r *RateRepository) query(ctx context.Context, q string, args ...any) ([]domain.Rate, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.Rate, 0, 64)
	for rows.Next() {
		rate, scanErr := scanRate(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", scanErr)
		}
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}
	return rates, nil
}

func scanRate(row pgx.Row) (domain.Rate, error) {
	var rate domain.Rate
	var price string
	if err := row.Scan(&rate.Symbol, &price, &rate.UpdatedAt); err != nil {
		return domain.Rate{}, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Rate{}, fmt.Errorf("bad price %q for %s: %w", price, rate.Symbol, err)
	}
	rate.Price = p
	return rate, nil
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}
