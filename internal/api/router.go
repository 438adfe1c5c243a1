package api

import (
	_ "cryptofolio/docs"
	"cryptofolio/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(h *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(middleware.StripSlashes)

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api", func(r chi.Router) {
		r.Post("/users", h.Register)
		r.Post("/users/authorize", h.Authorize)
		r.Route("/users/{user_id}", func(r chi.Router) {
			r.Get("/balance", h.GetBalance)
			r.Get("/orders", h.GetOrders)
			r.Get("/profit", h.GetProfit)
		})
		r.Get("/rates", h.GetRate)
		r.Get("/assets", h.GetAssets)
	})
	return router
}
