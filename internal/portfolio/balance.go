package portfolio

import (
	"slices"

	"cryptofolio/internal/domain"

	"github.com/shopspring/decimal"
)

const balanceSumPlaces = 9

type Balance struct {
	// Balances holds free+locked per asset.
	Balances map[string]decimal.Decimal
	// Sum is the whole wallet expressed in the requested asset.
	Sum decimal.Decimal
}

// Normalizer values a wallet in the reference asset and, on request, in any
// asset reachable from it directly or through the stable asset.
type Normalizer struct {
	reference string
	stable    string
}

func NewNormalizer(reference, stable string) *Normalizer {
	return &Normalizer{reference: reference, stable: stable}
}

func (n *Normalizer) Reference() string { return n.reference }

// RequiredSymbols lists every pair Normalize may consult for wallet and target.
func (n *Normalizer) RequiredSymbols(wallet domain.Wallet, target string) []string {
	symbols := []string{domain.Symbol(n.reference, n.stable)}
	add := func(symbol string) {
		if !slices.Contains(symbols, symbol) {
			symbols = append(symbols, symbol)
		}
	}
	for _, asset := range wallet.Assets() {
		if asset == n.reference || asset == n.stable {
			continue
		}
		add(domain.Symbol(asset, n.reference))
		add(domain.Symbol(asset, n.stable))
	}
	if target != "" && target != n.reference {
		add(domain.Symbol(n.reference, target))
		if target != n.stable {
			add(domain.Symbol(target, n.stable))
		}
	}
	return symbols
}

// Normalize sums the wallet in the reference asset and converts the total into
// target (empty target means the reference asset). A held asset without a
// usable rate fails the whole request.
func (n *Normalizer) Normalize(wallet domain.Wallet, target string, rates RateBook) (Balance, error) {
	balances := make(map[string]decimal.Decimal, len(wallet))
	totalInReference := decimal.Zero

	for _, asset := range wallet.Assets() {
		qty := wallet[asset].Total()
		balances[asset] = qty

		value, err := n.toReference(asset, qty, rates)
		if err != nil {
			return Balance{}, err
		}
		totalInReference = totalInReference.Add(value)
	}

	sum, err := n.fromReference(totalInReference, target, rates)
	if err != nil {
		return Balance{}, err
	}

	return Balance{Balances: balances, Sum: sum.Round(balanceSumPlaces)}, nil
}

func (n *Normalizer) toReference(asset string, qty decimal.Decimal, rates RateBook) (decimal.Decimal, error) {
	switch asset {
	case n.reference:
		return qty, nil
	case n.stable:
		rate, err := rates.lookup(asset, domain.Symbol(n.reference, n.stable))
		if err != nil {
			return decimal.Zero, err
		}
		return qty.Div(rate), nil
	}

	if rate, ok := rates.price(domain.Symbol(asset, n.reference)); ok {
		return qty.Mul(rate), nil
	}
	if value, ok := rates.viaStable(qty, asset, n.reference, n.stable); ok {
		return value, nil
	}
	return decimal.Zero, &RateUnavailableError{Asset: asset, Symbol: domain.Symbol(asset, n.reference)}
}

func (n *Normalizer) fromReference(total decimal.Decimal, target string, rates RateBook) (decimal.Decimal, error) {
	if target == "" || target == n.reference {
		return total, nil
	}
	if rate, ok := rates.price(domain.Symbol(n.reference, target)); ok {
		return total.Mul(rate), nil
	}
	if value, ok := rates.viaStable(total, n.reference, target, n.stable); ok {
		return value, nil
	}
	return decimal.Zero, &RateUnavailableError{Asset: target, Symbol: domain.Symbol(n.reference, target)}
}
