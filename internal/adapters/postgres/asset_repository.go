package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetRepository struct {
	pool *pgxpool.Pool
}

// GetUniverse loads the supported assets and, separately, the quote assets
// among them.
func (r *AssetRepository) GetUniverse(ctx context.Context) (assets, quotes map[string]struct{}, err error) {
	rows, err := r.pool.Query(ctx, `select code, is_quote from assets`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	assets = make(map[string]struct{})
	quotes = make(map[string]struct{})
	for rows.Next() {
		var code string
		var isQuote bool
		if err = rows.Scan(&code, &isQuote); err != nil {
			return nil, nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets[code] = struct{}{}
		if isQuote {
			quotes[code] = struct{}{}
		}
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating assets: %w", err)
	}
	return assets, quotes, nil
}

func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}
