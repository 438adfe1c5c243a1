package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ProfitResponse struct {
	Profit      map[string]json.Number `json:"profit" swaggertype:"object,number" example:"BTC:10.0001,ETH:5.0001"`
	TotalProfit json.Number            `json:"total_profit" swaggertype:"number" example:"15.0002"`
}

// GetProfit godoc
// @Summary Unrealized profit
// @Description Gain or loss per held asset of all imported fills at current rates
// @Tags Portfolio
// @Produce json
// @Param user_id path int true "Telegram user id"
// @Success 200 {object} successResponse{data=ProfitResponse}
// @Failure 403 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /users/{user_id}/profit [get]
func (h *Handler) GetProfit(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "user_id must be an integer")
		return
	}

	profit, err := h.portfolio.Profit(r.Context(), userID)
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "GetProfit", "user_id": userID})
		return
	}

	writeData(w, http.StatusOK, ProfitResponse{
		Profit:      numbers(profit.PerAsset),
		TotalProfit: number(profit.Total),
	})
}
