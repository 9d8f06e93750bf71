package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind membedakan access token dan refresh token; dua-duanya lewat codec yang sama.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrExpiredToken token lewat masa berlakunya
	ErrExpiredToken = errors.New("token expired")
	// ErrMalformedToken gagal decode, signature salah, atau claim tidak lengkap
	ErrMalformedToken = errors.New("invalid token")
)

type Claims struct {
	Email string `json:"email"`
	Kind  Kind   `json:"type"`
	jwt.RegisteredClaims
}

// Maker adalah codec JWT simetris. Secret dan algoritma di-set sekali
// waktu startup, tidak pernah dibaca dari global.
type Maker struct {
	secret []byte
	method jwt.SigningMethod
}

func NewMaker(secret, algorithm string) (*Maker, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	var method jwt.SigningMethod
	switch algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}

	return &Maker{
		secret: []byte(secret),
		method: method,
	}, nil
}

// Issue membuat token bertanda tangan dengan sub, email, type, iat, exp, jti.
// jti bikin dua token dengan claim identik tetap bisa dibedakan.
func (m *Maker) Issue(subject, email string, kind Kind, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(m.method, claims)
	return token.SignedString(m.secret)
}

// Verify cek signature dan expiry sekaligus. Gagal decode tidak pernah
// menghasilkan claim parsial: hasilnya claims atau salah satu error di atas.
func (m *Maker) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != m.method {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrMalformedToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformedToken
	}

	return claims, nil
}
