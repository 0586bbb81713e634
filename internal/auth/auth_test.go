package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/cache"
	"appointment-booking-api/internal/model"
)

const secret = "test-secret"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123456", hash)
	assert.True(t, CheckPassword(hash, "pw123456"))
	assert.False(t, CheckPassword(hash, "pw1234567"))

	// salted: same input, different hash
	again, err := HashPassword("pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Now()
	u := &model.User{ID: "user-1", Role: model.RolePatient}

	tok, err := MakeToken(u, secret, DefaultTokenTTL, now)
	require.NoError(t, err)

	claims, err := ParseToken(tok, secret, now)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, model.RolePatient, claims.Role)
	assert.NotEmpty(t, claims.ID)

	// expiry is fixed at issuance
	assert.WithinDuration(t, now.Add(24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestTokenExpiry(t *testing.T) {
	issued := time.Now()
	u := &model.User{ID: "user-1", Role: model.RoleAdmin}
	tok, err := MakeToken(u, secret, time.Hour, issued)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret, issued.Add(59*time.Minute))
	assert.NoError(t, err)

	_, err = ParseToken(tok, secret, issued.Add(61*time.Minute))
	assert.True(t, errors.Is(err, ErrExpired), "got %v", err)
	assert.False(t, errors.Is(err, ErrBadToken))
}

func TestAlgorithmConfusion(t *testing.T) {
	now := time.Now()
	u := &model.User{ID: "uid", Role: model.RolePatient}
	tok, _ := MakeToken(u, secret, time.Hour, now)

	// wrong secret fails
	_, err := ParseToken(tok, "wrong-secret", now)
	assert.ErrorIs(t, err, ErrBadToken)

	// garbage token fails
	_, err = ParseToken("not.a.token", secret, now)
	assert.ErrorIs(t, err, ErrBadToken)

	// unsigned token fails
	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "uid"})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(raw, secret, now)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestTokenStoreWithoutRedis(t *testing.T) {
	ts := NewTokenStore(nil)
	ctx := context.Background()
	require.NoError(t, ts.Revoke(ctx, "jti", time.Hour))
	assert.False(t, ts.IsRevoked(ctx, "jti"))
}

func TestTokenStoreReportsRedisFailure(t *testing.T) {
	// nothing listens on port 1
	c := cache.New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ts := NewTokenStore(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.Error(t, ts.Revoke(ctx, "jti", time.Hour))
	assert.False(t, ts.IsRevoked(ctx, "jti"))
}
