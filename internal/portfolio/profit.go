package portfolio

import (
	"cmp"
	"slices"

	"cryptofolio/internal/domain"

	"github.com/shopspring/decimal"
)

const profitPlaces = 4

type Profit struct {
	PerAsset map[string]decimal.Decimal
	// Total is the sum of the already rounded PerAsset values.
	Total decimal.Decimal
}

// Aggregator prices a user's fills at current rates to report gain/loss per
// asset the user still holds.
type Aggregator struct{}

func NewAggregator() *Aggregator { return &Aggregator{} }

// RequiredSymbols lists, in first-seen order, the distinct symbols of the
// fills Aggregate will price for wallet.
func (a *Aggregator) RequiredSymbols(wallet domain.Wallet, fills []domain.OrderFill) []string {
	held := heldFills(wallet, fills)
	seen := make(map[string]struct{}, len(held))
	symbols := make([]string, 0, len(held))
	for _, f := range held {
		if _, ok := seen[f.Symbol]; ok {
			continue
		}
		seen[f.Symbol] = struct{}{}
		symbols = append(symbols, f.Symbol)
	}
	return symbols
}

// Aggregate walks fills newest order id first. BUY contributes
// now-value minus spent, SELL contributes the negation of that.
func (a *Aggregator) Aggregate(wallet domain.Wallet, fills []domain.OrderFill, rates RateBook) (Profit, error) {
	held := heldFills(wallet, fills)
	sortNewestFirst(held)

	perAsset := make(map[string]decimal.Decimal)
	for _, f := range held {
		rate, err := rates.lookup(f.AssetFrom, f.Symbol)
		if err != nil {
			return Profit{}, err
		}
		delta := rate.Mul(f.Amount).Sub(f.Spent)
		if f.Side == domain.SideSell {
			delta = delta.Neg()
		}

		acc, ok := perAsset[f.AssetFrom]
		if !ok {
			perAsset[f.AssetFrom] = delta
			continue
		}
		perAsset[f.AssetFrom] = acc.Add(delta)
	}

	total := decimal.Zero
	for asset, v := range perAsset {
		rounded := v.Round(profitPlaces)
		perAsset[asset] = rounded
		total = total.Add(rounded)
	}

	return Profit{PerAsset: perAsset, Total: total}, nil
}

// heldFills drops fills that never executed and fills of assets not in wallet.
func heldFills(wallet domain.Wallet, fills []domain.OrderFill) []domain.OrderFill {
	held := make([]domain.OrderFill, 0, len(fills))
	for _, f := range fills {
		if f.IsNoop() || !wallet.Has(f.AssetFrom) {
			continue
		}
		held = append(held, f)
	}
	return held
}

func sortNewestFirst(fills []domain.OrderFill) {
	slices.SortStableFunc(fills, func(x, y domain.OrderFill) int {
		if c := cmp.Compare(y.OrderID, x.OrderID); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Symbol, y.Symbol); c != 0 {
			return c
		}
		return cmp.Compare(y.Time, x.Time)
	})
}
