package usecase

import "errors"

// Error bisnis yang boleh sampai ke handler. Fault store (koneksi,
// constraint di luar yang ditangani) tetap lewat sebagai error biasa
// dan berakhir 500, tidak pernah disamarkan jadi salah satu di bawah.
var (
	ErrDuplicateEmail      = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("order cannot be cancelled in its current status")
)
