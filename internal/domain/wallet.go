package domain

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

type Holding struct {
	Free   decimal.Decimal `json:"free"`
	Locked decimal.Decimal `json:"locked"`
}

func NewHolding(free, locked decimal.Decimal) (Holding, error) {
	if free.IsNegative() || locked.IsNegative() {
		return Holding{}, fmt.Errorf("free=%s locked=%s: %w", free, locked, ErrNegativeQuantity)
	}
	return Holding{Free: free, Locked: locked}, nil
}

func (h Holding) Total() decimal.Decimal {
	return h.Free.Add(h.Locked)
}

func (h Holding) IsEmpty() bool {
	return h.Free.IsZero() && h.Locked.IsZero()
}

// Wallet maps an asset code to the user's spot holding of it.
type Wallet map[string]Holding

func (w Wallet) Has(asset string) bool {
	_, ok := w[asset]
	return ok
}

// Validate reports the first holding with a negative quantity.
func (w Wallet) Validate() error {
	for _, asset := range w.Assets() {
		h := w[asset]
		if _, err := NewHolding(h.Free, h.Locked); err != nil {
			return fmt.Errorf("asset %s: %w", asset, err)
		}
	}
	return nil
}

// Assets returns wallet assets in a stable order.
func (w Wallet) Assets() []string {
	assets := slices.Collect(maps.Keys(w))
	slices.Sort(assets)
	return assets
}
