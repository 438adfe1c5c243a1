package account

import (
	"context"
	"fmt"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"
)

// fetchAllOrders pages through the exchange order history of symbol starting
// at fromOrderID until a short page is returned.
func fetchAllOrders(ctx context.Context, client adapters.ExchangeClient, creds domain.Credentials, symbol string, fromOrderID int64) ([]domain.ExchangeOrder, error) {
	var all []domain.ExchangeOrder
	for {
		page, err := client.GetOrders(ctx, creds, symbol, fromOrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to get orders for %s from id %d: %w", symbol, fromOrderID, err)
		}
		all = append(all, page...)
		if len(page) < adapters.OrdersPageLimit {
			return all, nil
		}

		next := page[len(page)-1].OrderID + 1
		if next <= fromOrderID {
			return all, nil
		}
		fromOrderID = next
	}
}

func toFills(orders []domain.ExchangeOrder, userID int64, assetFrom, assetTo string) []domain.OrderFill {
	fills := make([]domain.OrderFill, 0, len(orders))
	for _, o := range orders {
		fills = append(fills, o.ToFill(userID, assetFrom, assetTo))
	}
	return fills
}
