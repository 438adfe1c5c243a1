package rate

import (
	"context"
	"fmt"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"

	"github.com/sirupsen/logrus"
)

// RefreshRates overwrites stored prices with the latest exchange tickers
func RefreshRates(ctx context.Context, execID string, client adapters.ExchangeClient, repo adapters.RateRepository, cache adapters.RateCache) error {
	// STEP 1: getting all ticker prices from the exchange
	prices, err := client.GetPrices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get ticker prices: %w", err)
	}

	// STEP 2: dropping tickers without a usable price (delisted pairs report 0)
	rates := make([]domain.Rate, 0, len(prices))
	symbols := make([]string, 0, len(prices))
	for _, p := range prices {
		if p.Symbol == "" || !p.Price.IsPositive() {
			continue
		}
		rates = append(rates, p)
		symbols = append(symbols, p.Symbol)
	}

	if len(rates) == 0 {
		logrus.Infof("Nothing to refresh this time; execID: %s", execID)
		return nil
	}

	// STEP 3: upserting, then evicting the refreshed symbols from cache
	if err = repo.Upsert(ctx, rates); err != nil {
		return fmt.Errorf("failed to upsert rates: %w", err)
	}
	// A read that loaded the old price before Upsert may still cache it after
	// CleanBatch; the cache ttl (one refresh interval) bounds how long it lives.
	if cache != nil {
		cache.CleanBatch(symbols)
	}

	logrus.Infof("%d rates were successfully refreshed; execID %s", len(rates), execID)
	return nil
}
