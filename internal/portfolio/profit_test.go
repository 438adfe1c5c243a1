package portfolio

import (
	"testing"

	"cryptofolio/internal/domain"

	"github.com/stretchr/testify/require"
)

func buy(orderID int64, symbol, asset, quote, amount, spent string) domain.OrderFill {
	return domain.OrderFill{
		UserID:    1,
		OrderID:   orderID,
		Symbol:    symbol,
		AssetFrom: asset,
		AssetTo:   quote,
		Side:      domain.SideBuy,
		Amount:    d(amount),
		Spent:     d(spent),
		Time:      1_700_000_000_000 + orderID,
	}
}

func sell(orderID int64, symbol, asset, quote, amount, spent string) domain.OrderFill {
	f := buy(orderID, symbol, asset, quote, amount, spent)
	f.Side = domain.SideSell
	return f
}

func requireSameProfit(t *testing.T, want, got Profit) {
	t.Helper()
	require.Len(t, got.PerAsset, len(want.PerAsset))
	for asset, v := range want.PerAsset {
		requireDecimal(t, v.String(), got.PerAsset[asset])
	}
	requireDecimal(t, want.Total.String(), got.Total)
}

func TestAggregate_SingleBuy(t *testing.T) {
	wallet := domain.Wallet{"ETH": holding("2", "0")}
	fills := []domain.OrderFill{buy(1, "ETHUSDT", "ETH", "USDT", "2", "1000")}

	got, err := NewAggregator().Aggregate(wallet, fills, book(map[string]string{"ETHUSDT": "600"}))

	require.NoError(t, err)
	requireDecimal(t, "200", got.PerAsset["ETH"])
	requireDecimal(t, "200", got.Total)
}

func TestAggregate_TotalIsSumOfRoundedValues(t *testing.T) {
	wallet := domain.Wallet{"BTC": holding("1", "0"), "ETH": holding("1", "0")}
	fills := []domain.OrderFill{
		buy(1, "BTCUSDT", "BTC", "USDT", "1", "20000"),
		buy(2, "ETHUSDT", "ETH", "USDT", "1", "1000"),
	}
	rates := book(map[string]string{"BTCUSDT": "20010.00005", "ETHUSDT": "1005.00005"})

	got, err := NewAggregator().Aggregate(wallet, fills, rates)

	require.NoError(t, err)
	requireDecimal(t, "10.0001", got.PerAsset["BTC"])
	requireDecimal(t, "5.0001", got.PerAsset["ETH"])
	requireDecimal(t, "15.0002", got.Total)
}

func TestAggregate_ZeroAmountFillsAreIgnored(t *testing.T) {
	wallet := domain.Wallet{"ETH": holding("2", "0")}
	base := []domain.OrderFill{buy(1, "ETHUSDT", "ETH", "USDT", "2", "1000")}
	withNoop := append([]domain.OrderFill{buy(2, "ETHUSDT", "ETH", "USDT", "0", "0")}, base...)
	// a zero-amount fill on an unpriced symbol must not even need a rate
	withNoop = append(withNoop, buy(3, "ETHXYZ", "ETH", "XYZ", "0", "5"))
	rates := book(map[string]string{"ETHUSDT": "600"})

	want, err := NewAggregator().Aggregate(wallet, base, rates)
	require.NoError(t, err)
	got, err := NewAggregator().Aggregate(wallet, withNoop, rates)
	require.NoError(t, err)

	requireSameProfit(t, want, got)
}

func TestAggregate_NotHeldAssetsAreExcluded(t *testing.T) {
	wallet := domain.Wallet{"ETH": holding("2", "0")}
	base := []domain.OrderFill{buy(1, "ETHUSDT", "ETH", "USDT", "2", "1000")}
	withForeign := append([]domain.OrderFill{
		buy(5, "SOLUSDT", "SOL", "USDT", "10", "100"),
		buy(6, "XYZBTC", "XYZ", "BTC", "1", "1"),
	}, base...)
	rates := book(map[string]string{"ETHUSDT": "600", "SOLUSDT": "20"})

	want, err := NewAggregator().Aggregate(wallet, base, rates)
	require.NoError(t, err)
	got, err := NewAggregator().Aggregate(wallet, withForeign, rates)
	require.NoError(t, err)

	requireSameProfit(t, want, got)
	require.NotContains(t, got.PerAsset, "SOL")
}

// SELL contributes -(now value - spent). Documented behaviour, not verified economics.
func TestAggregate_SellSignConvention(t *testing.T) {
	wallet := domain.Wallet{"ETH": holding("1", "0")}
	fills := []domain.OrderFill{
		buy(1, "ETHUSDT", "ETH", "USDT", "2", "1000"),
		sell(2, "ETHUSDT", "ETH", "USDT", "1", "100"),
	}

	got, err := NewAggregator().Aggregate(wallet, fills, book(map[string]string{"ETHUSDT": "600"}))

	require.NoError(t, err)
	// 200 - (600 - 100)
	requireDecimal(t, "-300", got.PerAsset["ETH"])
	requireDecimal(t, "-300", got.Total)
}

func TestAggregate_MissingRate(t *testing.T) {
	wallet := domain.Wallet{"ETH": holding("1", "0")}
	fills := []domain.OrderFill{buy(1, "ETHBTC", "ETH", "BTC", "1", "0.05")}

	_, err := NewAggregator().Aggregate(wallet, fills, RateBook{})

	var rateErr *RateUnavailableError
	require.ErrorAs(t, err, &rateErr)
	require.Equal(t, "ETH", rateErr.Asset)
	require.Equal(t, "ETHBTC", rateErr.Symbol)
}

func TestAggregate_NoFills(t *testing.T) {
	got, err := NewAggregator().Aggregate(domain.Wallet{"BTC": holding("1", "0")}, nil, RateBook{})

	require.NoError(t, err)
	require.Empty(t, got.PerAsset)
	require.True(t, got.Total.IsZero())
}

func TestSortNewestFirst(t *testing.T) {
	fills := []domain.OrderFill{
		buy(1, "ETHUSDT", "ETH", "USDT", "1", "1"),
		buy(3, "ETHUSDT", "ETH", "USDT", "1", "1"),
		buy(3, "ETHBTC", "ETH", "BTC", "1", "1"),
		buy(2, "ETHUSDT", "ETH", "USDT", "1", "1"),
	}

	sortNewestFirst(fills)

	require.Equal(t, int64(3), fills[0].OrderID)
	require.Equal(t, "ETHBTC", fills[0].Symbol)
	require.Equal(t, "ETHUSDT", fills[1].Symbol)
	require.Equal(t, int64(2), fills[2].OrderID)
	require.Equal(t, int64(1), fills[3].OrderID)
}

func TestAggregator_RequiredSymbols(t *testing.T) {
	fills := []domain.OrderFill{
		buy(1, "ETHUSDT", "ETH", "USDT", "1", "1"),
		buy(2, "BTCUSDT", "BTC", "USDT", "1", "1"),
		buy(3, "ETHUSDT", "ETH", "USDT", "1", "1"),
	}
	wallet := domain.Wallet{"ETH": holding("1", "0"), "BTC": holding("1", "0")}

	require.Equal(t, []string{"ETHUSDT", "BTCUSDT"}, NewAggregator().RequiredSymbols(wallet, fills))
}

func TestAggregator_RequiredSymbols_SkipsIgnoredFills(t *testing.T) {
	fills := []domain.OrderFill{
		buy(1, "ETHUSDT", "ETH", "USDT", "2", "1000"),
		buy(2, "XRPUSDT", "XRP", "USDT", "0", "0"),
		buy(3, "LTCBTC", "LTC", "BTC", "1", "0.002"),
	}
	wallet := domain.Wallet{"ETH": holding("2", "0"), "XRP": holding("5", "0")}

	require.Equal(t, []string{"ETHUSDT"}, NewAggregator().RequiredSymbols(wallet, fills))
}
