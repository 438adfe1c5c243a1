package account

import (
	"context"
	"fmt"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"

	"github.com/sirupsen/logrus"
)

// SyncOrders appends fills newer than the stored ones for every fully updated user
func SyncOrders(ctx context.Context, execID string, users adapters.UserRepository, orders adapters.OrderRepository, client adapters.ExchangeClient) error {
	// STEP 1: only users whose backfill completed; the rest are still importing
	ready, err := users.GetFullyUpdated(ctx)
	if err != nil {
		return fmt.Errorf("failed to get fully updated users: %w", err)
	}

	if len(ready) == 0 {
		logrus.Infof("No users to sync orders for; execID: %s", execID)
		return nil
	}

	// STEP 2: per user, continuing each symbol from its newest stored order id
	var imported int64
	for _, user := range ready {
		n, syncErr := syncUserOrders(ctx, user, orders, client)
		if syncErr != nil {
			logrus.Warnf("Orders of user %d weren't synced: %s; execID: %s", user.TelegramID, syncErr, execID)
		}
		imported += n
	}

	logrus.Infof("%d new fills were synced for %d users; execID %s", imported, len(ready), execID)
	return nil
}

func syncUserOrders(ctx context.Context, user domain.User, orders adapters.OrderRepository, client adapters.ExchangeClient) (int64, error) {
	cursors, err := orders.GetCursors(ctx, user.TelegramID)
	if err != nil {
		return 0, fmt.Errorf("failed to get order cursors: %w", err)
	}

	var imported int64
	for _, c := range cursors {
		fresh, err := fetchAllOrders(ctx, client, user.Credentials, c.Symbol, c.LastOrderID+1)
		if err != nil {
			return imported, err
		}
		if len(fresh) == 0 {
			continue
		}
		n, err := orders.InsertOrders(ctx, toFills(fresh, user.TelegramID, c.AssetFrom, c.AssetTo))
		if err != nil {
			return imported, fmt.Errorf("failed to store orders for %s: %w", c.Symbol, err)
		}
		imported += n
	}
	return imported, nil
}
