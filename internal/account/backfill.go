package account

import (
	"context"
	"fmt"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"

	"github.com/sirupsen/logrus"
)

// Universe is the set of assets whose history gets imported.
type Universe interface {
	SupportedAssets() []string
	QuoteAssets() []string
}

// Backfiller imports a newly registered user's complete order history.
type Backfiller struct {
	users    adapters.UserRepository
	orders   adapters.OrderRepository
	rates    adapters.RateRepository
	client   adapters.ExchangeClient
	universe Universe
}

// Run fetches every asset/quote pair with a known rate, stores the fills and
// marks the user fully updated. Not resumable: on error the flag stays false.
func (b *Backfiller) Run(ctx context.Context, telegramID int64) error {
	user, err := b.users.GetByID(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("failed to load user %d: %w", telegramID, err)
	}

	known, err := b.rates.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rates: %w", err)
	}
	listed := make(map[string]struct{}, len(known))
	for _, r := range known {
		listed[r.Symbol] = struct{}{}
	}

	logrus.Infof("Full order history update of user %d (%s) started", user.TelegramID, user.TelegramUsername)

	var imported int64
	for _, asset := range b.universe.SupportedAssets() {
		for _, quote := range b.universe.QuoteAssets() {
			if asset == quote {
				continue
			}
			symbol := domain.Symbol(asset, quote)
			if _, ok := listed[symbol]; !ok {
				continue
			}

			orders, err := fetchAllOrders(ctx, b.client, user.Credentials, symbol, 0)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				continue
			}
			logrus.Debugf("Got %d orders for %s of user %d", len(orders), symbol, user.TelegramID)

			n, err := b.orders.InsertOrders(ctx, toFills(orders, user.TelegramID, asset, quote))
			if err != nil {
				return fmt.Errorf("failed to store orders for %s: %w", symbol, err)
			}
			imported += n
		}
	}

	if err = b.users.MarkFullyUpdated(ctx, user.TelegramID); err != nil {
		return fmt.Errorf("failed to mark user %d updated: %w", user.TelegramID, err)
	}
	logrus.Infof("User %d successfully updated, %d fills imported", user.TelegramID, imported)
	return nil
}

func NewBackfiller(users adapters.UserRepository, orders adapters.OrderRepository, rates adapters.RateRepository, client adapters.ExchangeClient, universe Universe) *Backfiller {
	return &Backfiller{users: users, orders: orders, rates: rates, client: client, universe: universe}
}
