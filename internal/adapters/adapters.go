package adapters

import (
	"context"

	"cryptofolio/internal/domain"
)

type ExchangeClient interface {
	GetPrices(ctx context.Context) ([]domain.Rate, error)
	GetWallet(ctx context.Context, creds domain.Credentials) (domain.Wallet, error)
	// GetOrders returns orders for symbol with id >= fromOrderID (0 means from the beginning).
	GetOrders(ctx context.Context, creds domain.Credentials, symbol string, fromOrderID int64) ([]domain.ExchangeOrder, error)
}

type RateRepository interface {
	GetBySymbol(ctx context.Context, symbol string) (domain.Rate, error)
	GetBySymbols(ctx context.Context, symbols []string) ([]domain.Rate, error)
	GetAll(ctx context.Context) ([]domain.Rate, error)
	Upsert(ctx context.Context, rates []domain.Rate) error
}

type RateCache interface {
	Get(symbol string) (domain.Rate, bool)
	Set(rate domain.Rate)
	CleanBatch(symbols []string)
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, telegramID int64) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetFullyUpdated(ctx context.Context) ([]domain.User, error)
	ReplaceWallet(ctx context.Context, telegramID int64, wallet domain.Wallet) error
	MarkFullyUpdated(ctx context.Context, telegramID int64) error
}

type OrderRepository interface {
	// GetOrders returns executed fills of a user; asset filters by AssetFrom when not empty.
	GetOrders(ctx context.Context, userID int64, asset string) ([]domain.OrderFill, error)
	// InsertOrders appends fills, ignoring ones already stored. Returns the number inserted.
	InsertOrders(ctx context.Context, fills []domain.OrderFill) (int64, error)
	GetCursors(ctx context.Context, userID int64) ([]domain.OrderCursor, error)
}

// OrdersPageLimit is the largest page the exchange returns for order history.
const OrdersPageLimit = 1000
