package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptofolio/internal/account"
	"cryptofolio/internal/adapters/cache"
	"cryptofolio/internal/adapters/exchange"
	"cryptofolio/internal/adapters/postgres"
	"cryptofolio/internal/api"
	"cryptofolio/internal/config"
	"cryptofolio/internal/handler"
	"cryptofolio/internal/platform/db"
	httpserver "cryptofolio/internal/platform/http"
	"cryptofolio/internal/platform/sealer"
	"cryptofolio/internal/portfolio"
	"cryptofolio/internal/rate"
	"cryptofolio/internal/scheduler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, asset universe)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool + migrations
	pool, err := db.Connect(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection and migrations successful")

	// Supported assets and quotes
	assets, quotes, err := postgres.NewAssetRepository(pool).GetUniverse(startupCtx)
	if err != nil || len(assets) == 0 || len(quotes) == 0 {
		if err == nil {
			err = errors.New("no supported assets available")
		}
		logrus.WithError(err).Error("Failed to load supported assets")
		return err
	}
	validator := rate.NewValidator(assets, quotes)
	if err = validator.ValidateAsset(appCfg.Portfolio.ReferenceAsset); err != nil {
		return err
	}
	if err = validator.ValidateAsset(appCfg.Portfolio.StableAsset); err != nil {
		return err
	}
	logrus.Infof("✅ %d supported assets loaded", len(assets))

	secretBox, err := sealer.New(appCfg.Security.Secret)
	if err != nil {
		return err
	}

	// Repositories
	rateRepo := postgres.NewRateRepository(pool)
	userRepo := postgres.NewUserRepository(pool, secretBox)
	orderRepo := postgres.NewOrderRepository(pool)

	rateCache, err := cache.NewRateCache(appCfg.Cache.MaxItems, seconds(appCfg.Scheduler.RatesJobDurationSec))
	if err != nil {
		logrus.WithError(err).Error("Failed to create rate cache")
		return err
	}
	defer rateCache.Close()

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	exchangeClient := exchange.NewBinanceClient(&http.Client{Timeout: httpTimeout}, appCfg.Exchange.BaseURL, appCfg.Exchange.RequestsPerSecond)

	// Services and jobs
	rateService := rate.NewService(rateRepo, rateCache)
	backfiller := account.NewBackfiller(userRepo, orderRepo, rateRepo, exchangeClient, validator)
	jobs := scheduler.NewScheduler(backfiller,
		scheduler.PeriodicJob{
			Name:     "refresh-rates",
			Interval: seconds(appCfg.Scheduler.RatesJobDurationSec),
			Run: func(ctx context.Context, execID string) error {
				return rate.RefreshRates(ctx, execID, exchangeClient, rateRepo, rateCache)
			},
			StartImmediately: true,
		},
		scheduler.PeriodicJob{
			Name:     "refresh-wallets",
			Interval: seconds(appCfg.Scheduler.WalletsJobDurationSec),
			Run: func(ctx context.Context, execID string) error {
				return account.RefreshWallets(ctx, execID, userRepo, exchangeClient)
			},
		},
		scheduler.PeriodicJob{
			Name:     "sync-orders",
			Interval: seconds(appCfg.Scheduler.OrdersJobDurationSec),
			Run: func(ctx context.Context, execID string) error {
				return account.SyncOrders(ctx, execID, userRepo, orderRepo, exchangeClient)
			},
		},
	)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := jobs.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := jobs.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	accountService := account.NewService(userRepo, orderRepo, exchangeClient, jobs)
	portfolioService := portfolio.NewService(userRepo, orderRepo, rateService, validator,
		portfolio.NewNormalizer(appCfg.Portfolio.ReferenceAsset, appCfg.Portfolio.StableAsset))

	// Handlers and router
	h := handler.NewHandler(validator, accountService, portfolioService, rateService)
	router := api.NewRouter(h)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
