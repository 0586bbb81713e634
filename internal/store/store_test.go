package store_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

func setup(t *testing.T) (*store.Store, func(sql string, args ...any)) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := store.Open(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	st := store.New(pool)
	require.NoError(t, st.Migrate(ctx))
	exec := func(sql string, args ...any) {
		_, err := pool.Exec(ctx, sql, args...)
		require.NoError(t, err)
	}
	return st, exec
}

func newUser(t *testing.T, st *store.Store) *model.User {
	t.Helper()
	u := &model.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        fmt.Sprintf("test-%s@test.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		Role:         model.RolePatient,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

// freeStart picks a start time far from anything another run inserted.
func freeStart() time.Time {
	base := time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(rand.IntN(50_000_000)) * time.Minute)
}

func newSlot(t *testing.T, st *store.Store) model.Slot {
	t.Helper()
	start := freeStart()
	sl := model.Slot{ID: uuid.NewString(), StartAt: start, EndAt: start.Add(30 * time.Minute)}
	n, err := st.InsertSlots(context.Background(), []model.Slot{sl})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	return sl
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	u := newUser(t, st)
	assert.False(t, u.CreatedAt.IsZero())

	dup := *u
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, st.CreateUser(ctx, &dup), store.ErrConflict)

	got, err := st.UserByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = st.UserByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.UserByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestInsertSlotsIdempotent(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()

	start := freeStart()
	batch := func() []model.Slot {
		var out []model.Slot
		for i := range 4 {
			s := start.Add(time.Duration(i) * 30 * time.Minute)
			out = append(out, model.Slot{ID: uuid.NewString(), StartAt: s, EndAt: s.Add(30 * time.Minute)})
		}
		return out
	}

	n, err := st.InsertSlots(ctx, batch())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = st.InsertSlots(ctx, batch())
	require.NoError(t, err)
	assert.Zero(t, n)

	avail, err := st.AvailableSlots(ctx, start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, avail, 4)
}

func TestConcurrentBooking(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	sl := newSlot(t, st)

	const n = 10
	users := make([]*model.User, n)
	for i := range users {
		users[i] = newUser(t, st)
	}

	var wg sync.WaitGroup
	results := make(chan error, n)
	for _, u := range users {
		wg.Add(1)
		go func(u *model.User) {
			defer wg.Done()
			results <- st.CreateBooking(ctx, &model.Booking{ID: uuid.NewString(), UserID: u.ID, SlotID: sl.ID})
		}(u)
	}
	wg.Wait()
	close(results)

	ok, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, store.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)

	got, err := st.SlotByID(ctx, sl.ID)
	require.NoError(t, err)
	assert.True(t, got.Booked)
}

func TestBookingDetailAndDelete(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	u := newUser(t, st)
	sl := newSlot(t, st)

	b := &model.Booking{ID: uuid.NewString(), UserID: u.ID, SlotID: sl.ID}
	require.NoError(t, st.CreateBooking(ctx, b))

	d, err := st.BookingByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, d.UserEmail)
	assert.Equal(t, u.Email, *d.UserEmail)
	require.NotNil(t, d.SlotStart)
	assert.True(t, sl.StartAt.Equal(*d.SlotStart))

	mine, err := st.BookingsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	avail, err := st.AvailableSlots(ctx, sl.StartAt, sl.StartAt)
	require.NoError(t, err)
	assert.Empty(t, avail)

	require.NoError(t, st.DeleteBooking(ctx, b.ID))
	assert.ErrorIs(t, st.DeleteBooking(ctx, b.ID), store.ErrNotFound)

	avail, err = st.AvailableSlots(ctx, sl.StartAt, sl.StartAt)
	require.NoError(t, err)
	assert.Len(t, avail, 1)
}

func TestCreateBookingMissingRows(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	u := newUser(t, st)

	err := st.CreateBooking(ctx, &model.Booking{ID: uuid.NewString(), UserID: u.ID, SlotID: uuid.NewString()})
	assert.ErrorIs(t, err, store.ErrNotFound)
	err = st.CreateBooking(ctx, &model.Booking{ID: uuid.NewString(), UserID: u.ID, SlotID: "bogus"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserDeleteCascadesBookings(t *testing.T) {
	st, exec := setup(t)
	ctx := context.Background()
	u := newUser(t, st)
	sl := newSlot(t, st)

	b := &model.Booking{ID: uuid.NewString(), UserID: u.ID, SlotID: sl.ID}
	require.NoError(t, st.CreateBooking(ctx, b))

	exec(`DELETE FROM users WHERE id = $1`, u.ID)

	_, err := st.BookingByID(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	got, err := st.SlotByID(ctx, sl.ID)
	require.NoError(t, err)
	assert.False(t, got.Booked)
}
