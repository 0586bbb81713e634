package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"appointment-booking-api/internal/model"
)

const bookingDetailSelect = `
	SELECT b.id, b.user_id, b.slot_id, b.created_at,
	       u.name, u.email, s.start_at, s.end_at
	FROM bookings b
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN slots s ON s.id = b.slot_id`

// CreateBooking inserts b. The UNIQUE(slot_id) constraint decides concurrent
// attempts: the loser gets ErrConflict. A missing slot or user is ErrNotFound.
func (s *Store) CreateBooking(ctx context.Context, b *model.Booking) error {
	if !validID(b.SlotID) {
		return ErrNotFound
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO bookings (id, user_id, slot_id) VALUES ($1,$2,$3)
		 RETURNING created_at`,
		b.ID, b.UserID, b.SlotID,
	).Scan(&b.CreatedAt)
	switch {
	case isUniqueViolation(err):
		return ErrConflict
	case isForeignKeyViolation(err):
		return ErrNotFound
	}
	return err
}

func (s *Store) BookingByID(ctx context.Context, id string) (*model.BookingDetail, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	rows, err := s.pool.Query(ctx, bookingDetailSelect+` WHERE b.id = $1`, id)
	if err != nil {
		return nil, err
	}
	out, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

// DeleteBooking removes the row. Zero rows affected means another request
// already cancelled it.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BookingsByUser lists a user's bookings, newest first.
func (s *Store) BookingsByUser(ctx context.Context, userID string) ([]model.BookingDetail, error) {
	if !validID(userID) {
		return []model.BookingDetail{}, nil
	}
	rows, err := s.pool.Query(ctx,
		bookingDetailSelect+` WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id`, userID)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

// AllBookings lists every booking, newest first.
func (s *Store) AllBookings(ctx context.Context) ([]model.BookingDetail, error) {
	rows, err := s.pool.Query(ctx, bookingDetailSelect+` ORDER BY b.created_at DESC, b.id`)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]model.BookingDetail, error) {
	defer rows.Close()

	out := []model.BookingDetail{}
	for rows.Next() {
		var d model.BookingDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.SlotID, &d.CreatedAt,
			&d.UserName, &d.UserEmail, &d.SlotStart, &d.SlotEnd,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
