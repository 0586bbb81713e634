package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

// Gate turns an Authorization header into a caller. Handlers call Authorize
// first and pass the result down; there is no ambient identity.
type Gate struct {
	users   UserRepository
	secret  string
	ttl     time.Duration
	revoked Revocations
	now     func() time.Time
}

// Issue signs an access token for u.
func (g *Gate) Issue(u *model.User) (string, error) {
	ttl := g.ttl
	if ttl <= 0 {
		ttl = auth.DefaultTokenTTL
	}
	tok, err := auth.MakeToken(u, g.secret, ttl, g.now())
	if err != nil {
		return "", apperr.Internal(err)
	}
	return tok, nil
}

// Authorize resolves the caller for a "Bearer <token>" header. The user is
// re-read on every call so deleted accounts lose access immediately.
func (g *Gate) Authorize(ctx context.Context, header string) (*model.User, error) {
	u, _, err := g.verify(ctx, header)
	return u, err
}

// Logout revokes the presented token for the rest of its lifetime. Without a
// revocation backend this only validates the token.
func (g *Gate) Logout(ctx context.Context, header string) error {
	_, c, err := g.verify(ctx, header)
	if err != nil {
		return err
	}
	if g.revoked == nil || c.ExpiresAt == nil {
		return nil
	}
	if err := g.revoked.Revoke(ctx, c.ID, c.ExpiresAt.Sub(g.now())); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (g *Gate) verify(ctx context.Context, header string) (*model.User, *auth.Claims, error) {
	raw, err := bearer(header)
	if err != nil {
		return nil, nil, err
	}

	c, err := auth.ParseToken(raw, g.secret, g.now())
	if errors.Is(err, auth.ErrExpired) {
		return nil, nil, apperr.ErrTokenExpired
	}
	if err != nil {
		return nil, nil, apperr.ErrInvalidToken
	}
	if g.revoked != nil && g.revoked.IsRevoked(ctx, c.ID) {
		return nil, nil, apperr.ErrInvalidToken
	}

	u, err := g.users.UserByID(ctx, c.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return u, c, nil
}

func bearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", apperr.ErrTokenMissing
	}
	scheme, tok, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", apperr.ErrInvalidTokenFormat
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", apperr.ErrTokenMissing
	}
	return tok, nil
}
