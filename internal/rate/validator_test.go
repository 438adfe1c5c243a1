package rate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestValidator() *AssetValidator {
	return NewValidator(
		map[string]struct{}{"ETH": {}, "XRP": {}},
		map[string]struct{}{"BTC": {}, "USDT": {}},
	)
}

func TestAssetValidator_ValidateAsset(t *testing.T) {
	v := newTestValidator()

	require.Equal(t, ErrSymbolRequired, v.ValidateAsset(""))
	require.Equal(t, ErrAssetUnsupported, v.ValidateAsset("DOGE"))
	require.NoError(t, v.ValidateAsset("XRP"))
	// quote assets belong to the universe too
	require.NoError(t, v.ValidateAsset("USDT"))
}

func TestAssetValidator_ValidateSymbol(t *testing.T) {
	v := newTestValidator()

	require.Equal(t, ErrSymbolRequired, v.ValidateSymbol(""))
	require.Equal(t, ErrSymbolInvalid, v.ValidateSymbol("B"))
	require.Equal(t, ErrSymbolInvalid, v.ValidateSymbol("BTC/USDT"))
	require.Equal(t, ErrSymbolInvalid, v.ValidateSymbol("btcusdt"))
	require.Equal(t, ErrSymbolInvalid, v.ValidateSymbol("ABCDEFGHIJKLMNOPQRSTU"))
	require.NoError(t, v.ValidateSymbol("1INCHUSDT"))
}

func TestNewValidator_ClonesMaps(t *testing.T) {
	assets := map[string]struct{}{"ETH": {}}
	quotes := map[string]struct{}{"BTC": {}}
	v := NewValidator(assets, quotes)

	delete(assets, "ETH")
	delete(quotes, "BTC")

	require.NoError(t, v.ValidateAsset("ETH"))
	require.Equal(t, []string{"BTC"}, v.QuoteAssets())
}

func TestAssetValidator_SupportedAssets(t *testing.T) {
	v := newTestValidator()

	got := v.SupportedAssets()
	require.Equal(t, []string{"BTC", "ETH", "USDT", "XRP"}, got)

	// ensure caller modifications do not affect validator internal state
	got[0] = "XXX"
	require.Equal(t, []string{"BTC", "ETH", "USDT", "XRP"}, v.SupportedAssets())
	require.Equal(t, []string{"BTC", "USDT"}, v.QuoteAssets())
}

func TestNewValidator_NilAssets(t *testing.T) {
	v := NewValidator(nil, map[string]struct{}{"USDT": {}})
	require.Equal(t, []string{"USDT"}, v.SupportedAssets())
}
