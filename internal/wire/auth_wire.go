package wire

import (
	"order-management/internal/adaptor"
	"order-management/internal/data/repository"
	"order-management/pkg/middleware"
	"order-management/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	maker *token.Maker,
	log *zap.Logger,
) {
	// Route auth public; login/refresh justru yang menghasilkan token.
	// Rate limit per IP mengikuti batas di service aslinya.
	r.With(middleware.RateLimitPerIP(middleware.PerMinute(5), 5)).
		Post("/auth/register", authHandler.Register)
	r.With(middleware.RateLimitPerIP(middleware.PerMinute(5), 5)).
		Post("/auth/login", authHandler.Login)
	r.With(middleware.RateLimitPerIP(middleware.PerMinute(10), 10)).
		Post("/auth/refresh", authHandler.Refresh)

	// Logout butuh identitas caller, jadi lewat auth gate
	r.With(middleware.AuthJWT(maker, repo.User, log)).
		Post("/auth/logout", authHandler.Logout)
}
