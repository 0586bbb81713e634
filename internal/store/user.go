package store

import (
	"context"

	"appointment-booking-api/internal/model"
)

// CreateUser inserts u and fills CreatedAt. A duplicate email returns ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role),
	).Scan(&u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(ctx,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users WHERE email = $1`, email)
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return s.scanUser(ctx,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users WHERE id = $1`, id)
}

func (s *Store) scanUser(ctx context.Context, q string, arg string) (*model.User, error) {
	u := &model.User{}
	var role string
	err := s.pool.QueryRow(ctx, q, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	u.Role = model.Role(role)
	return u, nil
}
