package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/portfolio"
	"cryptofolio/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Validator interface {
	ValidateAsset(asset string) error
	ValidateSymbol(symbol string) error
	SupportedAssets() []string
}

type AccountService interface {
	Register(ctx context.Context, telegramID int64, username string, creds domain.Credentials) (domain.User, error)
	Authorize(ctx context.Context, telegramID int64) error
	Orders(ctx context.Context, telegramID int64, asset string) ([]domain.OrderFill, error)
}

type PortfolioService interface {
	Balance(ctx context.Context, telegramID int64, target string) (portfolio.Balance, error)
	Profit(ctx context.Context, telegramID int64) (portfolio.Profit, error)
}

type RateService interface {
	GetRate(ctx context.Context, symbol string) (domain.Rate, error)
}

type Handler struct {
	validator Validator
	accounts  AccountService
	portfolio PortfolioService
	rates     RateService
}

func NewHandler(validator Validator, accounts AccountService, portfolio PortfolioService, rates RateService) *Handler {
	return &Handler{validator: validator, accounts: accounts, portfolio: portfolio, rates: rates}
}

const (
	statusSuccess = "success"
	statusFailure = "failure"

	codeInvalidRequest    = "invalid_request"
	codeInvalidSymbol     = "invalid_symbol"
	codeNotAuthorized     = "not_authorized"
	codeRateUnavailable   = "rate_unavailable"
	codeRateNotFound      = "rate_not_found"
	codeAlreadyRegistered = "already_registered"
	codeWrongKeys         = "wrong_keys"
	codeInternal          = "internal"
)

type successResponse struct {
	Status string `json:"status" example:"success"`
	Data   any    `json:"data"`
}

type errorBody struct {
	Code    string `json:"code" example:"not_authorized"`
	Message string `json:"message" example:"user is not registered"`
}

type errorResponse struct {
	Status string    `json:"status" example:"failure"`
	Error  errorBody `json:"error"`
}

func writeData(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(successResponse{Status: statusSuccess, Data: data})
}

func writeError(w http.ResponseWriter, statusCode int, code, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Status: statusFailure,
		Error:  errorBody{Code: code, Message: errorMsg},
	})
}

// writeFailure maps domain errors onto the response envelope; anything
// unrecognised is logged and reported as internal.
func writeFailure(w http.ResponseWriter, err error, fields logrus.Fields) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusForbidden, codeNotAuthorized, "user is not registered")
	case errors.Is(err, portfolio.ErrRateUnavailable):
		writeError(w, http.StatusUnprocessableEntity, codeRateUnavailable, err.Error())
	case errors.Is(err, rate.ErrAssetUnsupported),
		errors.Is(err, rate.ErrSymbolRequired),
		errors.Is(err, rate.ErrSymbolInvalid):
		writeError(w, http.StatusBadRequest, codeInvalidSymbol, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		writeError(w, http.StatusBadRequest, codeAlreadyRegistered, "user is already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, codeWrongKeys, "exchange rejected the api keys")
	default:
		msg := "ups, something went wrong this time"
		logrus.WithError(err).WithFields(fields).Error(msg)
		writeError(w, http.StatusInternalServerError, codeInternal, msg)
	}
}

func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "user_id")), 10, 64)
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// number renders a decimal as a bare JSON number.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func numbers(m map[string]decimal.Decimal) map[string]json.Number {
	out := make(map[string]json.Number, len(m))
	for k, v := range m {
		out[k] = number(v)
	}
	return out
}
