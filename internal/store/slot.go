package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"appointment-booking-api/internal/model"
)

// InsertSlots creates every slot whose start time is not taken yet and
// returns how many rows were added. Existing start times are left alone, so
// overlapping calls never duplicate. All inserts share one transaction.
func (s *Store) InsertSlots(ctx context.Context, slots []model.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	b := &pgx.Batch{}
	for _, sl := range slots {
		b.Queue(
			`INSERT INTO slots (id, start_at, end_at) VALUES ($1,$2,$3)
			 ON CONFLICT (start_at) DO NOTHING`,
			sl.ID, sl.StartAt, sl.EndAt,
		)
	}

	br := tx.SendBatch(ctx, b)
	created := 0
	for range slots {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, err
		}
		created += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, err
	}
	return created, tx.Commit(ctx)
}

// AvailableSlots lists unbooked slots with from <= start_at <= to, oldest first.
func (s *Store) AvailableSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT s.id, s.start_at, s.end_at, s.created_at
		 FROM slots s
		 LEFT JOIN bookings b ON b.slot_id = s.id
		 WHERE s.start_at >= $1 AND s.start_at <= $2
		   AND b.id IS NULL
		 ORDER BY s.start_at`, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Slot{}
	for rows.Next() {
		var sl model.Slot
		if err := rows.Scan(&sl.ID, &sl.StartAt, &sl.EndAt, &sl.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func (s *Store) SlotByID(ctx context.Context, id string) (*model.Slot, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	sl := &model.Slot{}
	err := s.pool.QueryRow(ctx,
		`SELECT s.id, s.start_at, s.end_at, s.created_at, b.id IS NOT NULL
		 FROM slots s
		 LEFT JOIN bookings b ON b.slot_id = s.id
		 WHERE s.id = $1`, id,
	).Scan(&sl.ID, &sl.StartAt, &sl.EndAt, &sl.CreatedAt, &sl.Booked)
	if err != nil {
		return nil, notFound(err)
	}
	return sl, nil
}
