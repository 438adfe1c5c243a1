package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type BalanceResponse struct {
	Balances map[string]json.Number `json:"balances" swaggertype:"object,number" example:"BTC:0.5,USDT:1000"`
	Sum      json.Number            `json:"sum" swaggertype:"number" example:"0.55"`
}

// GetBalance godoc
// @Summary Wallet balance
// @Description Holdings (free + locked) per asset and the whole wallet valued in the requested asset, BTC by default
// @Tags Portfolio
// @Produce json
// @Param user_id path int true "Telegram user id"
// @Param symbol query string false "Asset to express the sum in" example(USDT)
// @Success 200 {object} successResponse{data=BalanceResponse}
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /users/{user_id}/balance [get]
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "user_id must be an integer")
		return
	}
	target := normalizeSymbol(r.URL.Query().Get("symbol"))

	balance, err := h.portfolio.Balance(r.Context(), userID, target)
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "GetBalance", "user_id": userID, "symbol": target})
		return
	}

	writeData(w, http.StatusOK, BalanceResponse{
		Balances: numbers(balance.Balances),
		Sum:      number(balance.Sum),
	})
}
