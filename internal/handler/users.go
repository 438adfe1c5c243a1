package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"cryptofolio/internal/domain"

	"github.com/sirupsen/logrus"
)

type RegisterRequest struct {
	TelegramID       int64  `json:"telegram_id" example:"123456789"`
	TelegramUsername string `json:"telegram_username" example:"satoshi"`
	SecretAPIKey     string `json:"secret_api_key"`
	SecretToken      string `json:"secret_token"`
}

type RegisterResponse struct {
	TelegramID       int64  `json:"telegram_id" example:"123456789"`
	TelegramUsername string `json:"telegram_username" example:"satoshi"`
}

type AuthorizeRequest struct {
	UserID int64 `json:"user_id" example:"123456789"`
}

// Register godoc
// @Summary Register a user
// @Description Store exchange keys of a telegram user, fetch the wallet and queue the order history import
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Telegram user and exchange keys"
// @Success 201 {object} successResponse{data=RegisterResponse}
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /users [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req RegisterRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	creds := domain.Credentials{
		APIKey:    strings.TrimSpace(req.SecretAPIKey),
		APISecret: strings.TrimSpace(req.SecretToken),
	}
	if req.TelegramID <= 0 || creds.APIKey == "" || creds.APISecret == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "telegram_id, secret_api_key and secret_token are required")
		return
	}

	user, err := h.accounts.Register(r.Context(), req.TelegramID, strings.TrimSpace(req.TelegramUsername), creds)
	if err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "Register", "telegram_id": req.TelegramID})
		return
	}

	writeData(w, http.StatusCreated, RegisterResponse{
		TelegramID:       user.TelegramID,
		TelegramUsername: user.TelegramUsername,
	})
}

// Authorize godoc
// @Summary Check registration
// @Tags Users
// @Accept json
// @Produce json
// @Param request body AuthorizeRequest true "Telegram user id"
// @Success 200 {object} successResponse
// @Failure 403 {object} errorResponse
// @Router /users/authorize [post]
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AuthorizeRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}

	if err := h.accounts.Authorize(r.Context(), req.UserID); err != nil {
		writeFailure(w, err, logrus.Fields{"handler": "Authorize", "user_id": req.UserID})
		return
	}
	writeData(w, http.StatusOK, struct{}{})
}
