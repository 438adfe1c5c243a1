package rate

import (
	"context"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"
)

type Service struct {
	repo  adapters.RateRepository
	cache adapters.RateCache
}

// GetRate returns the stored price of symbol or domain.ErrRateNotFound.
func (s *Service) GetRate(ctx context.Context, symbol string) (domain.Rate, error) {
	if s.cache != nil {
		if r, ok := s.cache.Get(symbol); ok {
			return r, nil
		}
	}

	r, err := s.repo.GetBySymbol(ctx, symbol)
	if err != nil {
		return domain.Rate{}, err
	}
	if s.cache != nil {
		s.cache.Set(r)
	}
	return r, nil
}

// GetRates returns the known rates among symbols. Unknown symbols are simply
// absent from the result; callers decide whether that is an error.
func (s *Service) GetRates(ctx context.Context, symbols []string) ([]domain.Rate, error) {
	found := make([]domain.Rate, 0, len(symbols))
	missing := make([]string, 0, len(symbols))

	for _, symbol := range symbols {
		if s.cache != nil {
			if r, ok := s.cache.Get(symbol); ok {
				found = append(found, r)
				continue
			}
		}
		missing = append(missing, symbol)
	}
	if len(missing) == 0 {
		return found, nil
	}

	fetched, err := s.repo.GetBySymbols(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, r := range fetched {
		if s.cache != nil {
			s.cache.Set(r)
		}
		found = append(found, r)
	}
	return found, nil
}

func NewService(repo adapters.RateRepository, cache adapters.RateCache) *Service {
	return &Service{repo: repo, cache: cache}
}
