package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cryptofolio/internal/adapters"
	"cryptofolio/internal/domain"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// BinanceClient talks to the Binance spot REST API. Public endpoints share
// one client; signed ones build a client per credential pair. Every request,
// whoever it is for, draws from one limiter.
type BinanceClient struct {
	httpClient *http.Client
	baseURL    string
	public     *binance.Client
	limiter    *rate.Limiter
}

func (c *BinanceClient) GetPrices(ctx context.Context) ([]domain.Rate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	prices, err := c.public.NewListPricesService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}

	now := time.Now().UTC()
	rates := make([]domain.Rate, 0, len(prices))
	for _, p := range prices {
		price, parseErr := decimal.NewFromString(p.Price)
		if parseErr != nil {
			return nil, fmt.Errorf("bad price %q for %s: %w", p.Price, p.Symbol, parseErr)
		}
		rates = append(rates, domain.Rate{Symbol: p.Symbol, Price: price, UpdatedAt: now})
	}
	return rates, nil
}

// GetWallet returns the spot account with empty holdings dropped.
func (c *BinanceClient) GetWallet(ctx context.Context, creds domain.Credentials) (domain.Wallet, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	account, err := c.signed(creds).NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, mapError("failed to get account", err)
	}

	wallet := make(domain.Wallet, len(account.Balances))
	for _, b := range account.Balances {
		free, parseErr := decimal.NewFromString(b.Free)
		if parseErr != nil {
			return nil, fmt.Errorf("bad free balance %q of %s: %w", b.Free, b.Asset, parseErr)
		}
		locked, parseErr := decimal.NewFromString(b.Locked)
		if parseErr != nil {
			return nil, fmt.Errorf("bad locked balance %q of %s: %w", b.Locked, b.Asset, parseErr)
		}
		holding, holdErr := domain.NewHolding(free, locked)
		if holdErr != nil {
			return nil, fmt.Errorf("asset %s: %w", b.Asset, holdErr)
		}
		if holding.IsEmpty() {
			continue
		}
		wallet[b.Asset] = holding
	}
	return wallet, nil
}

func (c *BinanceClient) GetOrders(ctx context.Context, creds domain.Credentials, symbol string, fromOrderID int64) ([]domain.ExchangeOrder, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	svc := c.signed(creds).NewListOrdersService().Symbol(symbol).Limit(adapters.OrdersPageLimit)
	if fromOrderID > 0 {
		svc = svc.OrderID(fromOrderID)
	}
	orders, err := svc.Do(ctx)
	if err != nil {
		return nil, mapError("failed to list orders of "+symbol, err)
	}

	out := make([]domain.ExchangeOrder, 0, len(orders))
	for _, o := range orders {
		order, convErr := toExchangeOrder(o)
		if convErr != nil {
			return nil, convErr
		}
		out = append(out, order)
	}
	return out, nil
}

func (c *BinanceClient) signed(creds domain.Credentials) *binance.Client {
	client := binance.NewClient(creds.APIKey, creds.APISecret)
	client.BaseURL = c.baseURL
	client.HTTPClient = c.httpClient
	return client
}

func toExchangeOrder(o *binance.Order) (domain.ExchangeOrder, error) {
	price, err := decimal.NewFromString(o.Price)
	if err != nil {
		return domain.ExchangeOrder{}, fmt.Errorf("bad price of order %d: %w", o.OrderID, err)
	}
	amount, err := decimal.NewFromString(o.ExecutedQuantity)
	if err != nil {
		return domain.ExchangeOrder{}, fmt.Errorf("bad executed quantity of order %d: %w", o.OrderID, err)
	}
	spent, err := decimal.NewFromString(o.CummulativeQuoteQuantity)
	if err != nil {
		return domain.ExchangeOrder{}, fmt.Errorf("bad quote quantity of order %d: %w", o.OrderID, err)
	}
	return domain.ExchangeOrder{
		OrderID: o.OrderID,
		Symbol:  o.Symbol,
		Side:    domain.Side(o.Side),
		Price:   price,
		Amount:  amount,
		Spent:   spent,
		Time:    o.Time,
	}, nil
}

// Binance error codes meaning the key pair itself was rejected.
var credentialErrorCodes = map[int64]struct{}{
	-1022: {}, // signature for this request is not valid
	-2008: {}, // invalid api-key id
	-2014: {}, // api-key format invalid
	-2015: {}, // invalid api-key, IP, or permissions for action
}

// mapError turns a rejection of the key pair into ErrInvalidCredentials;
// other failures are only wrapped.
func mapError(msg string, err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		if _, ok := credentialErrorCodes[apiErr.Code]; ok {
			return fmt.Errorf("%s: %w: %s", msg, domain.ErrInvalidCredentials, apiErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// NewBinanceClient builds a client allowing requestsPerSecond calls with a
// burst of the same size; non-positive means unlimited.
func NewBinanceClient(httpClient *http.Client, baseURL string, requestsPerSecond float64) *BinanceClient {
	baseURL = strings.TrimSuffix(baseURL, "/")
	public := binance.NewClient("", "")
	public.BaseURL = baseURL
	public.HTTPClient = httpClient

	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerSecond > 0 {
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return &BinanceClient{httpClient: httpClient, baseURL: baseURL, public: public, limiter: limiter}
}
