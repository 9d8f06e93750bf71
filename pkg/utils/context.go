package utils

import (
	"context"

	"order-management/internal/data/entity"
)

type contextKey string

const userKey contextKey = "current_user"

// SetUserContext menyimpan user hasil autentikasi ke context request
func SetUserContext(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext mengambil user yang sudah lolos auth gate
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userKey).(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
