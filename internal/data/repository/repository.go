package repository

import (
	"errors"

	"order-management/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Order        OrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		RefreshToken: NewRefreshTokenRepository(db, log),
		Order:        NewOrderRepository(db, log),
	}
}

// IsUniqueViolation cek error postgres 23505 (unique constraint)
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
