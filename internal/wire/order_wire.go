package wire

import (
	"order-management/internal/adaptor"
	"order-management/internal/data/repository"
	"order-management/pkg/middleware"
	"order-management/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	maker *token.Maker,
	log *zap.Logger,
) {
	// Semua route order lewat auth gate
	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.AuthJWT(maker, repo.User, log))

		r.Post("/create", orderHandler.CreateOrder)
		r.Get("/my-orders", orderHandler.MyOrders)
		r.Post("/{id}/cancel", orderHandler.CancelOrder)
	})
}
