package account

import (
	"context"
	"errors"
	"fmt"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"

	"github.com/sirupsen/logrus"
)

type BackfillScheduler interface {
	ScheduleBackfill(telegramID int64) error
}

type Service struct {
	users    adapters.UserRepository
	orders   adapters.OrderRepository
	exchange adapters.ExchangeClient
	backfill BackfillScheduler
}

// Register stores a new user with the wallet fetched using creds and queues
// the order history backfill. The fetch doubles as a check of the keys.
func (s *Service) Register(ctx context.Context, telegramID int64, username string, creds domain.Credentials) (domain.User, error) {
	_, err := s.users.GetByID(ctx, telegramID)
	if err == nil {
		return domain.User{}, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	wallet, err := s.exchange.GetWallet(ctx, creds)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("failed to fetch initial wallet: %w", err)
	}

	user := domain.User{
		TelegramID:       telegramID,
		TelegramUsername: username,
		Credentials:      creds,
		Wallet:           wallet,
	}
	if err = s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	if err = s.backfill.ScheduleBackfill(telegramID); err != nil {
		// user stays registered with FullyUpdated=false
		logrus.WithError(err).WithField("telegram_id", telegramID).Error("order history backfill wasn't scheduled")
	}
	return user, nil
}

// Authorize succeeds iff the user is registered.
func (s *Service) Authorize(ctx context.Context, telegramID int64) error {
	_, err := s.users.GetByID(ctx, telegramID)
	return err
}

func (s *Service) Orders(ctx context.Context, telegramID int64, asset string) ([]domain.OrderFill, error) {
	if _, err := s.users.GetByID(ctx, telegramID); err != nil {
		return nil, err
	}
	return s.orders.GetOrders(ctx, telegramID, asset)
}

func NewService(users adapters.UserRepository, orders adapters.OrderRepository, exchange adapters.ExchangeClient, backfill BackfillScheduler) *Service {
	return &Service{users: users, orders: orders, exchange: exchange, backfill: backfill}
}
