package account

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5
const perRequestTimeout = 10 * time.Second

// RefreshWallets replaces every user's wallet with the exchange's current spot account
func RefreshWallets(ctx context.Context, execID string, users adapters.UserRepository, client adapters.ExchangeClient) error {
	// STEP 1: getting all registered users
	all, err := users.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}

	if len(all) == 0 {
		logrus.Infof("No users to refresh wallets for; execID: %s", execID)
		return nil
	}

	// STEP 2: filling the work queue; users are independent, one failing doesn't stop the rest
	workQueue := make(chan domain.User, len(all))
	for _, u := range all {
		workQueue <- u
	}
	close(workQueue)

	// STEP 3: running workers in parallel
	var refreshed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			runWalletWorker(ctx, workerID, workQueue, users, client, &refreshed)
		}(i)
	}
	wg.Wait()

	logrus.Infof("%d of %d wallets were successfully refreshed; execID %s", refreshed.Load(), len(all), execID)
	return nil
}

func runWalletWorker(ctx context.Context, workerID int, workQueue <-chan domain.User, users adapters.UserRepository, client adapters.ExchangeClient, refreshed *atomic.Int64) {
	for {
		select {
		case <-ctx.Done():
			return
		case user, ok := <-workQueue:
			if !ok {
				return
			}
			if refreshWallet(ctx, workerID, user, users, client) {
				refreshed.Add(1)
			}
		}
	}
}

// refreshWallet fetches one user's spot account and stores it wholesale, so
// assets no longer reported by the exchange disappear.
func refreshWallet(ctx context.Context, workerID int, user domain.User, users adapters.UserRepository, client adapters.ExchangeClient) bool {
	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()

	wallet, err := client.GetWallet(reqCtx, user.Credentials)
	if err != nil {
		logrus.Warnf("Wallet of user %d wasn't refreshed by Worker %d as exchange call returned error: %s", user.TelegramID, workerID, err)
		return false
	}
	if err = users.ReplaceWallet(ctx, user.TelegramID, wallet); err != nil {
		logrus.Warnf("Wallet of user %d wasn't stored by Worker %d: %s", user.TelegramID, workerID, err)
		return false
	}
	return true
}
