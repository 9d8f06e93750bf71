package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaker(t *testing.T) {
	_, err := NewMaker("", "HS256")
	assert.Error(t, err)

	_, err = NewMaker("secret", "RS256")
	assert.Error(t, err)

	for _, alg := range []string{"", "HS256", "HS384", "HS512"} {
		_, err := NewMaker("secret", alg)
		assert.NoError(t, err, alg)
	}
}

func TestIssueAndVerify(t *testing.T) {
	maker, err := NewMaker("test-secret", "HS256")
	require.NoError(t, err)

	subject := uuid.New().String()
	tokenStr, err := maker.Issue(subject, "budi@example.com", KindAccess, time.Minute)
	require.NoError(t, err)

	claims, err := maker.Verify(tokenStr)
	require.NoError(t, err)

	assert.Equal(t, subject, claims.Subject)
	assert.Equal(t, "budi@example.com", claims.Email)
	assert.Equal(t, KindAccess, claims.Kind)
	assert.NotEmpty(t, claims.ID)

	// decode tidak mengubah token; verify kedua hasilnya sama
	again, err := maker.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, claims, again)
}

func TestKindRoundTrip(t *testing.T) {
	maker, err := NewMaker("test-secret", "HS256")
	require.NoError(t, err)

	for _, kind := range []Kind{KindAccess, KindRefresh} {
		tokenStr, err := maker.Issue("sub", "budi@example.com", kind, time.Minute)
		require.NoError(t, err)

		claims, err := maker.Verify(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, kind, claims.Kind)
	}
}

func TestTokensAreUnique(t *testing.T) {
	maker, err := NewMaker("test-secret", "HS256")
	require.NoError(t, err)

	// claim identik, jti beda
	first, err := maker.Issue("sub", "budi@example.com", KindAccess, time.Minute)
	require.NoError(t, err)
	second, err := maker.Issue("sub", "budi@example.com", KindAccess, time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyExpired(t *testing.T) {
	maker, err := NewMaker("test-secret", "HS256")
	require.NoError(t, err)

	tokenStr, err := maker.Issue("sub", "budi@example.com", KindAccess, -time.Minute)
	require.NoError(t, err)

	claims, err := maker.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestVerifyMalformed(t *testing.T) {
	maker, err := NewMaker("test-secret", "HS256")
	require.NoError(t, err)

	tokenStr, err := maker.Issue("sub", "budi@example.com", KindAccess, time.Minute)
	require.NoError(t, err)

	otherMaker, err := NewMaker("other-secret", "HS256")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"tampered", tokenStr + "x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := maker.Verify(tc.token)
			assert.ErrorIs(t, err, ErrMalformedToken)
			assert.Nil(t, claims)
		})
	}

	// signature dari secret lain
	claims, err := otherMaker.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.Nil(t, claims)
}

func TestVerifyWrongAlgorithm(t *testing.T) {
	hs256, err := NewMaker("test-secret", "HS256")
	require.NoError(t, err)
	hs512, err := NewMaker("test-secret", "HS512")
	require.NoError(t, err)

	tokenStr, err := hs512.Issue("sub", "budi@example.com", KindAccess, time.Minute)
	require.NoError(t, err)

	_, err = hs256.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
