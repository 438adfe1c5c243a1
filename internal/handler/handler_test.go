package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/portfolio"
	"cryptofolio/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ValidateAsset(asset string) error {
	return m.Called(asset).Error(0)
}

func (m *MockValidator) ValidateSymbol(symbol string) error {
	return m.Called(symbol).Error(0)
}

func (m *MockValidator) SupportedAssets() []string {
	args := m.Called()
	assets, _ := args.Get(0).([]string)
	return assets
}

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) Register(ctx context.Context, telegramID int64, username string, creds domain.Credentials) (domain.User, error) {
	args := m.Called(ctx, telegramID, username, creds)
	u, _ := args.Get(0).(domain.User)
	return u, args.Error(1)
}

func (m *MockAccountService) Authorize(ctx context.Context, telegramID int64) error {
	return m.Called(ctx, telegramID).Error(0)
}

func (m *MockAccountService) Orders(ctx context.Context, telegramID int64, asset string) ([]domain.OrderFill, error) {
	args := m.Called(ctx, telegramID, asset)
	fills, _ := args.Get(0).([]domain.OrderFill)
	return fills, args.Error(1)
}

type MockPortfolioService struct{ mock.Mock }

func (m *MockPortfolioService) Balance(ctx context.Context, telegramID int64, target string) (portfolio.Balance, error) {
	args := m.Called(ctx, telegramID, target)
	b, _ := args.Get(0).(portfolio.Balance)
	return b, args.Error(1)
}

func (m *MockPortfolioService) Profit(ctx context.Context, telegramID int64) (portfolio.Profit, error) {
	args := m.Called(ctx, telegramID)
	p, _ := args.Get(0).(portfolio.Profit)
	return p, args.Error(1)
}

type MockRateService struct{ mock.Mock }

func (m *MockRateService) GetRate(ctx context.Context, symbol string) (domain.Rate, error) {
	args := m.Called(ctx, symbol)
	r, _ := args.Get(0).(domain.Rate)
	return r, args.Error(1)
}

type mocks struct {
	validator *MockValidator
	accounts  *MockAccountService
	portfolio *MockPortfolioService
	rates     *MockRateService
}

func newTestHandler() (*Handler, mocks) {
	m := mocks{
		validator: new(MockValidator),
		accounts:  new(MockAccountService),
		portfolio: new(MockPortfolioService),
		rates:     new(MockRateService),
	}
	return NewHandler(m.validator, m.accounts, m.portfolio, m.rates), m
}

func withUserID(req *http.Request, userID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_id", userID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- GetBalance ---

func TestHandler_GetBalance_Success(t *testing.T) {
	h, m := newTestHandler()
	m.portfolio.On("Balance", mock.Anything, int64(7), "USDT").Return(portfolio.Balance{
		Balances: map[string]decimal.Decimal{"BTC": d("1"), "USDT": d("1000")},
		Sum:      d("21000"),
	}, nil).Once()

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/7/balance?symbol=%20usdt", nil), "7")
	rr := httptest.NewRecorder()

	h.GetBalance(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	require.Equal(t, "success", env.Status)
	require.JSONEq(t, `{"balances":{"BTC":1,"USDT":1000},"sum":21000}`, string(env.Data))
}

func TestHandler_GetBalance_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"user not found", domain.ErrUserNotFound, http.StatusForbidden, "not_authorized"},
		{"rate unavailable", &portfolio.RateUnavailableError{Asset: "XYZ", Symbol: "XYZBTC"}, http.StatusUnprocessableEntity, "rate_unavailable"},
		{"unsupported target", rate.ErrAssetUnsupported, http.StatusBadRequest, "invalid_symbol"},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.portfolio.On("Balance", mock.Anything, int64(7), "").Return(portfolio.Balance{}, tc.err).Once()

			req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/7/balance", nil), "7")
			rr := httptest.NewRecorder()

			h.GetBalance(rr, req)

			require.Equal(t, tc.wantCode, rr.Code)
			env := decodeEnvelope(t, rr)
			require.Equal(t, "failure", env.Status)
			require.Equal(t, tc.wantErr, env.Error.Code)
		})
	}
}

func TestHandler_GetBalance_RateUnavailableNamesAsset(t *testing.T) {
	h, m := newTestHandler()
	m.portfolio.On("Balance", mock.Anything, int64(7), "").
		Return(portfolio.Balance{}, &portfolio.RateUnavailableError{Asset: "XYZ", Symbol: "XYZBTC"}).Once()

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/7/balance", nil), "7")
	rr := httptest.NewRecorder()

	h.GetBalance(rr, req)

	env := decodeEnvelope(t, rr)
	require.Contains(t, env.Error.Message, "XYZ")
}

func TestHandler_GetBalance_BadUserID(t *testing.T) {
	h, m := newTestHandler()

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/abc/balance", nil), "abc")
	rr := httptest.NewRecorder()

	h.GetBalance(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	m.portfolio.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything, mock.Anything)
}

// --- GetProfit ---

func TestHandler_GetProfit_Success(t *testing.T) {
	h, m := newTestHandler()
	m.portfolio.On("Profit", mock.Anything, int64(7)).Return(portfolio.Profit{
		PerAsset: map[string]decimal.Decimal{"BTC": d("10.0001"), "ETH": d("5.0001")},
		Total:    d("15.0002"),
	}, nil).Once()

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/7/profit", nil), "7")
	rr := httptest.NewRecorder()

	h.GetProfit(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	require.JSONEq(t, `{"profit":{"BTC":10.0001,"ETH":5.0001},"total_profit":15.0002}`, string(env.Data))
}

func TestHandler_GetProfit_NotAuthorized(t *testing.T) {
	h, m := newTestHandler()
	m.portfolio.On("Profit", mock.Anything, int64(8)).Return(portfolio.Profit{}, domain.ErrUserNotFound).Once()

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/8/profit", nil), "8")
	rr := httptest.NewRecorder()

	h.GetProfit(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
}

// --- GetOrders ---

func TestHandler_GetOrders_Success(t *testing.T) {
	h, m := newTestHandler()
	m.validator.On("ValidateAsset", "ETH").Return(nil).Once()
	m.accounts.On("Orders", mock.Anything, int64(7), "ETH").Return([]domain.OrderFill{{
		UserID: 7, OrderID: 42, Symbol: "ETHUSDT", AssetFrom: "ETH", AssetTo: "USDT", Side: domain.SideBuy,
		Price: d("500"), Amount: d("2"), Spent: d("1000"), Time: 1700000000000,
	}}, nil).Once()

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/7/orders?symbol=eth", nil), "7")
	rr := httptest.NewRecorder()

	h.GetOrders(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	env := decodeEnvelope(t, rr)
	require.JSONEq(t, `{"orders":[{"order_id":42,"symbol":"ETHUSDT","asset_from":"ETH","asset_to":"USDT",
		"side":"BUY","price":500,"amount":2,"spent":1000,"time":1700000000000}]}`, string(env.Data))
}

func TestHandler_GetOrders_InvalidAsset(t *testing.T) {
	h, m := newTestHandler()
	m.validator.On("ValidateAsset", "DOGE").Return(rate.ErrAssetUnsupported).Once()

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/7/orders?symbol=DOGE", nil), "7")
	rr := httptest.NewRecorder()

	h.GetOrders(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "invalid_symbol", decodeEnvelope(t, rr).Error.Code)
	m.accounts.AssertNotCalled(t, "Orders", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetOrders_EmptyIsList(t *testing.T) {
	h, m := newTestHandler()
	m.accounts.On("Orders", mock.Anything, int64(7), "").Return(nil, nil).Once()

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/users/7/orders", nil), "7")
	rr := httptest.NewRecorder()

	h.GetOrders(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"orders":[]}`, string(decodeEnvelope(t, rr).Data))
}

// --- Register / Authorize ---

func TestHandler_Register_Success(t *testing.T) {
	h, m := newTestHandler()
	creds := domain.Credentials{APIKey: "k", APISecret: "s"}
	m.accounts.On("Register", mock.Anything, int64(42), "alice", creds).
		Return(domain.User{TelegramID: 42, TelegramUsername: "alice"}, nil).Once()

	body := `{"telegram_id":42,"telegram_username":"alice","secret_api_key":"k","secret_token":"s"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.JSONEq(t, `{"telegram_id":42,"telegram_username":"alice"}`, string(decodeEnvelope(t, rr).Data))
}

func TestHandler_Register_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"already registered", domain.ErrUserAlreadyExists, http.StatusBadRequest, "already_registered"},
		{"wrong keys", domain.ErrInvalidCredentials, http.StatusBadRequest, "wrong_keys"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.accounts.On("Register", mock.Anything, int64(42), "", mock.Anything).Return(domain.User{}, tc.err).Once()

			body := `{"telegram_id":42,"secret_api_key":"k","secret_token":"s"}`
			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
			rr := httptest.NewRecorder()

			h.Register(rr, req)

			require.Equal(t, tc.wantCode, rr.Code)
			require.Equal(t, tc.wantErr, decodeEnvelope(t, rr).Error.Code)
		})
	}
}

func TestHandler_Register_InvalidBody(t *testing.T) {
	cases := []string{
		`{"telegram_id":42`,
		`{"telegram_id":42,"secret_api_key":"k"}`,
		`{"telegram_id":42,"secret_api_key":"k","secret_token":"s","extra":1}`,
	}
	for _, body := range cases {
		h, m := newTestHandler()
		req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		h.Register(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code, body)
		m.accounts.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestHandler_Authorize(t *testing.T) {
	h, m := newTestHandler()
	m.accounts.On("Authorize", mock.Anything, int64(1)).Return(nil).Once()
	m.accounts.On("Authorize", mock.Anything, int64(2)).Return(domain.ErrUserNotFound).Once()

	rr := httptest.NewRecorder()
	h.Authorize(rr, httptest.NewRequest(http.MethodPost, "/api/users/authorize", bytes.NewBufferString(`{"user_id":1}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{}`, string(decodeEnvelope(t, rr).Data))

	rr = httptest.NewRecorder()
	h.Authorize(rr, httptest.NewRequest(http.MethodPost, "/api/users/authorize", bytes.NewBufferString(`{"user_id":2}`)))
	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Equal(t, "not_authorized", decodeEnvelope(t, rr).Error.Code)
}

func TestHandler_Authorize_InvalidBody(t *testing.T) {
	cases := []string{
		`{"user_id":1`,
		`{"user_id":"one"}`,
		`{"user_id":1,"telegram_id":1}`,
	}
	for _, body := range cases {
		h, m := newTestHandler()
		rr := httptest.NewRecorder()

		h.Authorize(rr, httptest.NewRequest(http.MethodPost, "/api/users/authorize", bytes.NewBufferString(body)))

		require.Equal(t, http.StatusBadRequest, rr.Code, body)
		require.Equal(t, "invalid_request", decodeEnvelope(t, rr).Error.Code)
		m.accounts.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
	}
}

// --- GetRate / GetAssets ---

func TestHandler_GetRate_Success(t *testing.T) {
	h, m := newTestHandler()
	updated := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m.validator.On("ValidateSymbol", "BTCUSDT").Return(nil).Once()
	m.rates.On("GetRate", mock.Anything, "BTCUSDT").
		Return(domain.Rate{Symbol: "BTCUSDT", Price: d("20000.5"), UpdatedAt: updated}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetRate(rr, httptest.NewRequest(http.MethodGet, "/api/rates?symbol=btcusdt", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"symbol":"BTCUSDT","value":20000.5,"updated_at":"2024-01-02T03:04:05Z"}`, string(decodeEnvelope(t, rr).Data))
}

func TestHandler_GetRate_NotFound(t *testing.T) {
	h, m := newTestHandler()
	m.validator.On("ValidateSymbol", "XYZBTC").Return(nil).Once()
	m.rates.On("GetRate", mock.Anything, "XYZBTC").Return(domain.Rate{}, domain.ErrRateNotFound).Once()

	rr := httptest.NewRecorder()
	h.GetRate(rr, httptest.NewRequest(http.MethodGet, "/api/rates?symbol=XYZBTC", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "rate_not_found", decodeEnvelope(t, rr).Error.Code)
}

func TestHandler_GetRate_InvalidSymbol(t *testing.T) {
	h, m := newTestHandler()
	m.validator.On("ValidateSymbol", "").Return(rate.ErrSymbolRequired).Once()

	rr := httptest.NewRecorder()
	h.GetRate(rr, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, rate.ErrSymbolRequired.Error(), decodeEnvelope(t, rr).Error.Message)
	m.rates.AssertNotCalled(t, "GetRate", mock.Anything, mock.Anything)
}

func TestHandler_GetAssets(t *testing.T) {
	h, m := newTestHandler()
	m.validator.On("SupportedAssets").Return([]string{"BTC", "ETH", "USDT"}).Once()

	rr := httptest.NewRecorder()
	h.GetAssets(rr, httptest.NewRequest(http.MethodGet, "/api/assets", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"assets":["BTC","ETH","USDT"]}`, string(decodeEnvelope(t, rr).Data))
}
