package portfolio

import (
	"errors"
	"fmt"

	"cryptofolio/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrRateUnavailable = errors.New("rate unavailable")

// RateUnavailableError names the asset that could not be priced and the pair
// that was missing for it.
type RateUnavailableError struct {
	Asset  string
	Symbol string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("rate unavailable for %s: no price for %s", e.Asset, e.Symbol)
}

func (e *RateUnavailableError) Is(target error) bool {
	return target == ErrRateUnavailable
}

// RateBook is a read-only snapshot of symbol -> price taken for one request.
// Non-positive prices are treated as absent.
type RateBook map[string]decimal.Decimal

func NewRateBook(rates []domain.Rate) RateBook {
	book := make(RateBook, len(rates))
	for _, r := range rates {
		book[r.Symbol] = r.Price
	}
	return book
}

func (b RateBook) price(symbol string) (decimal.Decimal, bool) {
	p, ok := b[symbol]
	if !ok || !p.IsPositive() {
		return decimal.Zero, false
	}
	return p, true
}

// lookup fails with RateUnavailableError naming asset when symbol has no price.
func (b RateBook) lookup(asset, symbol string) (decimal.Decimal, error) {
	p, ok := b.price(symbol)
	if !ok {
		return decimal.Zero, &RateUnavailableError{Asset: asset, Symbol: symbol}
	}
	return p, nil
}

// viaStable converts qty of asset into target going through the stable asset:
// qty * rate(asset/stable) / rate(target/stable).
func (b RateBook) viaStable(qty decimal.Decimal, asset, target, stable string) (decimal.Decimal, bool) {
	toStable, ok := b.price(domain.Symbol(asset, stable))
	if !ok {
		return decimal.Zero, false
	}
	fromStable, ok := b.price(domain.Symbol(target, stable))
	if !ok {
		return decimal.Zero, false
	}
	return qty.Mul(toStable).Div(fromStable), true
}
