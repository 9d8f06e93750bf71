package middleware

import (
	"net/http"
	"strings"

	"order-management/internal/data/repository"
	"order-management/pkg/token"
	"order-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthJWT memvalidasi bearer access token dan menaruh user hasil lookup
// ke context. Stateless, satu lookup store per request; handler di bawahnya
// selalu lihat data user terkini, bukan snapshot claim.
func AuthJWT(maker *token.Maker, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader || tokenStr == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := maker.Verify(tokenStr)
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			// Refresh token tidak boleh dipakai sebagai bearer token
			if claims.Kind != token.KindAccess {
				logger.Warn("Non-access token used on protected route",
					zap.String("kind", string(claims.Kind)))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			if claims.Subject == "" {
				logger.Warn("Access token missing subject claim")
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("Access token subject is not a valid user id",
					zap.String("sub", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err),
					zap.String("user_id", claims.Subject))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				logger.Warn("Token subject no longer exists", zap.String("user_id", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
