package portfolio

import (
	"context"
	"fmt"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"
)

type RateSource interface {
	GetRates(ctx context.Context, symbols []string) ([]domain.Rate, error)
}

type AssetValidator interface {
	ValidateAsset(asset string) error
}

type Service struct {
	users      adapters.UserRepository
	orders     adapters.OrderRepository
	rates      RateSource
	validator  AssetValidator
	normalizer *Normalizer
	aggregator *Aggregator
}

// Balance values the stored wallet of a user in target. Empty target means
// the reference asset.
func (s *Service) Balance(ctx context.Context, telegramID int64, target string) (Balance, error) {
	if target != "" {
		if err := s.validator.ValidateAsset(target); err != nil {
			return Balance{}, err
		}
	}

	user, err := s.users.GetByID(ctx, telegramID)
	if err != nil {
		return Balance{}, err
	}

	book, err := s.rateBook(ctx, s.normalizer.RequiredSymbols(user.Wallet, target))
	if err != nil {
		return Balance{}, err
	}
	return s.normalizer.Normalize(user.Wallet, target, book)
}

func (s *Service) Profit(ctx context.Context, telegramID int64) (Profit, error) {
	user, err := s.users.GetByID(ctx, telegramID)
	if err != nil {
		return Profit{}, err
	}

	fills, err := s.orders.GetOrders(ctx, telegramID, "")
	if err != nil {
		return Profit{}, fmt.Errorf("failed to load orders of user %d: %w", telegramID, err)
	}

	book, err := s.rateBook(ctx, s.aggregator.RequiredSymbols(user.Wallet, fills))
	if err != nil {
		return Profit{}, err
	}
	return s.aggregator.Aggregate(user.Wallet, fills, book)
}

func (s *Service) rateBook(ctx context.Context, symbols []string) (RateBook, error) {
	if len(symbols) == 0 {
		return RateBook{}, nil
	}
	rates, err := s.rates.GetRates(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}
	return NewRateBook(rates), nil
}

func NewService(users adapters.UserRepository, orders adapters.OrderRepository, rates RateSource, validator AssetValidator, normalizer *Normalizer) *Service {
	return &Service{
		users:      users,
		orders:     orders,
		rates:      rates,
		validator:  validator,
		normalizer: normalizer,
		aggregator: NewAggregator(),
	}
}
