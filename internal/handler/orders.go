package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type OrderView struct {
	OrderID   int64       `json:"order_id" example:"28457"`
	Symbol    string      `json:"symbol" example:"ETHUSDT"`
	AssetFrom string      `json:"asset_from" example:"ETH"`
	AssetTo   string      `json:"asset_to" example:"USDT"`
	Side      string      `json:"side" example:"BUY"`
	Price     json.Number `json:"price" swaggertype:"number" example:"1500.5"`
	Amount    json.Number `json:"amount" swaggertype:"number" example:"2"`
	Spent     json.Number `json:"spent" swaggertype:"number" example:"3001"`
	Time      int64       `json:"time" example:"1700000000000"`
}

type OrdersResponse struct {
	Orders []OrderView `json:"orders"`
}

// GetOrders godoc
// @Summary Imported fills
// @Description Executed fills of a user, newest first, optionally for one asset
// @Tags Portfolio
// @Produce json
// @Param user_id path int true "Telegram user id"
// @Param symbol query string false "Asset filter" example(ETH)
// @Success 200 {object} successResponse{data=OrdersResponse}
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /users/{user_id}/orders [get]
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "user_id must be an integer")
		return
	}
	asset := normalizeSymbol(r.URL.Query().Get("symbol"))
	if asset != "" {
		if err = h.validator.ValidateAsset(asset); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidSymbol, err.Error())
			return
		}
	}

	fills, err := h.accounts.Orders(r.Context(), userID, asset)
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "GetOrders", "user_id": userID, "symbol": asset})
		return
	}

	views := make([]OrderView, 0, len(fills))
	for _, f := range fills {
		views = append(views, OrderView{
			OrderID:   f.OrderID,
			Symbol:    f.Symbol,
			AssetFrom: f.AssetFrom,
			AssetTo:   f.AssetTo,
			Side:      string(f.Side),
			Price:     number(f.Price),
			Amount:    number(f.Amount),
			Spent:     number(f.Spent),
			Time:      f.Time,
		})
	}
	writeData(w, http.StatusOK, OrdersResponse{Orders: views})
}
