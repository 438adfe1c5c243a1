package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cryptofolio/internal/domain"

	"github.com/sirupsen/logrus"
)

type RateResponse struct {
	Symbol    string      `json:"symbol" example:"BTCUSDT"`
	Value     json.Number `json:"value" swaggertype:"number" example:"20000.5"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type AssetsResponse struct {
	Assets []string `json:"assets" example:"BTC,ETH,USDT"`
}

// GetRate godoc
// @Summary Latest rate of a pair
// @Tags Rates
// @Produce json
// @Param symbol query string true "Pair without separators" example(BTCUSDT)
// @Success 200 {object} successResponse{data=RateResponse}
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /rates [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	symbol := normalizeSymbol(r.URL.Query().Get("symbol"))
	if err := h.validator.ValidateSymbol(symbol); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidSymbol, err.Error())
		return
	}

	rate, err := h.rates.GetRate(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, codeRateNotFound, "rate not found")
			return
		}
		writeFailure(w, err, logrus.Fields{"handler": "GetRate", "symbol": symbol})
		return
	}

	writeData(w, http.StatusOK, RateResponse{
		Symbol:    rate.Symbol,
		Value:     number(rate.Price),
		UpdatedAt: rate.UpdatedAt,
	})
}

// GetAssets godoc
// @Summary List supported assets
// @Tags Rates
// @Produce json
// @Success 200 {object} successResponse{data=AssetsResponse}
// @Router /assets [get]
func (h *Handler) GetAssets(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, AssetsResponse{Assets: h.validator.SupportedAssets()})
}
