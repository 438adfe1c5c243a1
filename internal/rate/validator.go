package rate

import (
	"errors"
	"maps"
	"slices"
)

var (
	ErrSymbolRequired   = errors.New("symbol is required")
	ErrSymbolInvalid    = errors.New("symbol must be 2 to 20 latin letters or digits")
	ErrAssetUnsupported = errors.New("asset not supported")
)

const maxSymbolLen = 20

// AssetValidator knows the asset universe the portfolio works with.
type AssetValidator struct {
	assetsSet map[string]struct{} // read only copy
	assetsLst []string            // read only copy
	quotesLst []string            // read only copy
}

func (v *AssetValidator) ValidateAsset(asset string) error {
	if asset == "" {
		return ErrSymbolRequired
	}
	if _, ok := v.assetsSet[asset]; !ok {
		return ErrAssetUnsupported
	}
	return nil
}

// ValidateSymbol checks the shape of a pair symbol such as BTCUSDT. Pairs are
// not restricted to the asset universe: the rate store mirrors every ticker.
func (v *AssetValidator) ValidateSymbol(symbol string) error {
	if symbol == "" {
		return ErrSymbolRequired
	}
	if len(symbol) < 2 || len(symbol) > maxSymbolLen {
		return ErrSymbolInvalid
	}
	for _, c := range symbol {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return ErrSymbolInvalid
		}
	}
	return nil
}

func (v *AssetValidator) SupportedAssets() []string {
	return slices.Clone(v.assetsLst)
}

// QuoteAssets lists assets that other assets are traded against.
func (v *AssetValidator) QuoteAssets() []string {
	return slices.Clone(v.quotesLst)
}

func NewValidator(assets map[string]struct{}, quotes map[string]struct{}) *AssetValidator {
	assetsSet := make(map[string]struct{}, len(assets)+len(quotes))
	maps.Copy(assetsSet, assets)
	for q := range quotes {
		assetsSet[q] = struct{}{}
	}
	assetsLst := slices.Sorted(maps.Keys(assetsSet))
	quotesLst := slices.Sorted(maps.Keys(quotes))

	return &AssetValidator{
		assetsSet: assetsSet,
		assetsLst: assetsLst,
		quotesLst: quotesLst,
	}
}
