package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

// dummyHash is compared against when the email is unknown so both login
// failure paths spend the same bcrypt time.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3KdKC5FYQ0gE0l5H8sGnh3S"

type Identity struct {
	users UserRepository
	log   *slog.Logger
}

// Register creates a patient account.
func (s *Identity) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, apperr.ErrMissingFields
	}
	return s.create(ctx, name, email, password, model.RolePatient)
}

// Authenticate checks credentials. Unknown email and wrong password are
// reported identically.
func (s *Identity) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.ErrMissingCredentials
	}
	u, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		auth.CheckPassword(dummyHash, password)
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return u, nil
}

func (s *Identity) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// SeedAdmin makes sure an admin account exists for email. It reports whether
// a new account was created; an existing account is left untouched.
func (s *Identity) SeedAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, apperr.ErrMissingFields
	}
	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}
	_, err := s.users.UserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, apperr.Internal(err)
	}
	_, err = s.create(ctx, name, email, password, model.RoleAdmin)
	if errors.Is(err, apperr.ErrEmailExists) {
		// seeded concurrently by another instance
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info("admin account seeded", "email", email)
	return true, nil
}

func (s *Identity) create(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if _, err := s.users.UserByEmail(ctx, email); err == nil {
		return nil, apperr.ErrEmailExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	// the unique index settles a race between two registrations
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperr.ErrEmailExists
		}
		return nil, apperr.Internal(err)
	}
	s.log.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
