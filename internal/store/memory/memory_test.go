package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

func TestUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, &model.User{ID: "u1", Email: "a@example.com"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &model.User{ID: "u2", Email: "a@example.com"}), store.ErrConflict)

	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	n, err := s.InsertSlots(ctx, []model.Slot{
		{ID: "s1", StartAt: start, EndAt: start.Add(30 * time.Minute)},
		{ID: "s2", StartAt: start, EndAt: start.Add(30 * time.Minute)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "same start time inserted once")

	require.NoError(t, s.CreateBooking(ctx, &model.Booking{ID: "b1", UserID: "u1", SlotID: "s1"}))
	assert.ErrorIs(t, s.CreateBooking(ctx, &model.Booking{ID: "b2", UserID: "u1", SlotID: "s1"}), store.ErrConflict)
	assert.ErrorIs(t, s.CreateBooking(ctx, &model.Booking{ID: "b3", UserID: "u1", SlotID: "s2"}), store.ErrNotFound)
	assert.ErrorIs(t, s.CreateBooking(ctx, &model.Booking{ID: "b4", UserID: "ghost", SlotID: "s1"}), store.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.CreateUser(ctx, &model.User{ID: "u1", Name: "A", Email: "a@example.com"}))
	var slots []model.Slot
	for i := range 3 {
		st := fixed.Add(time.Duration(i) * time.Hour)
		slots = append(slots, model.Slot{ID: string(rune('x' + i)), StartAt: st, EndAt: st.Add(time.Hour)})
	}
	_, err := s.InsertSlots(ctx, slots)
	require.NoError(t, err)

	for i, id := range []string{"b1", "b2", "b3"} {
		require.NoError(t, s.CreateBooking(ctx, &model.Booking{ID: id, UserID: "u1", SlotID: slots[i].ID}))
	}

	got, err := s.BookingsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b3", got[0].ID, "equal timestamps fall back to insertion order")
	assert.Equal(t, "b1", got[2].ID)
	require.NotNil(t, got[0].UserName)
	assert.Equal(t, "A", *got[0].UserName)

	avail, err := s.AvailableSlots(ctx, fixed, fixed.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, avail)

	require.NoError(t, s.DeleteBooking(ctx, "b2"))
	avail, err = s.AvailableSlots(ctx, fixed, fixed.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, slots[1].ID, avail[0].ID)
}
