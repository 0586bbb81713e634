// Package memory is an in-process implementation of the store repositories.
// It enforces the same uniqueness rules as the postgres schema (email,
// slot start time, one booking per slot) under a single mutex, which makes it
// usable for tests and for STORE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

type Store struct {
	mu sync.RWMutex

	users   map[string]model.User
	byEmail map[string]string

	slots   map[string]model.Slot
	byStart map[int64]string

	bookings map[string]bookingRow
	bySlot   map[string]string

	seq int64
	now func() time.Time
}

type bookingRow struct {
	model.Booking
	seq int64
}

func New() *Store {
	return &Store{
		users:    map[string]model.User{},
		byEmail:  map[string]string{},
		slots:    map[string]model.Slot{},
		byStart:  map[int64]string{},
		bookings: map[string]bookingRow{},
		bySlot:   map[string]string{},
		now:      time.Now,
	}
}

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return store.ErrConflict
	}
	u.CreatedAt = s.now()
	s.users[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) UserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) InsertSlots(_ context.Context, slots []model.Slot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := 0
	for _, sl := range slots {
		key := sl.StartAt.UnixNano()
		if _, ok := s.byStart[key]; ok {
			continue
		}
		sl.CreatedAt = s.now()
		sl.Booked = false
		s.slots[sl.ID] = sl
		s.byStart[key] = sl.ID
		created++
	}
	return created, nil
}

func (s *Store) AvailableSlots(_ context.Context, from, to time.Time) ([]model.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Slot{}
	for _, sl := range s.slots {
		if sl.StartAt.Before(from) || sl.StartAt.After(to) {
			continue
		}
		if _, booked := s.bySlot[sl.ID]; booked {
			continue
		}
		out = append(out, sl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (s *Store) SlotByID(_ context.Context, id string) (*model.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.slots[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	_, sl.Booked = s.bySlot[id]
	return &sl, nil
}

func (s *Store) CreateBooking(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[b.SlotID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := s.users[b.UserID]; !ok {
		return store.ErrNotFound
	}
	if _, taken := s.bySlot[b.SlotID]; taken {
		return store.ErrConflict
	}
	s.seq++
	b.CreatedAt = s.now()
	s.bookings[b.ID] = bookingRow{Booking: *b, seq: s.seq}
	s.bySlot[b.SlotID] = b.ID
	return nil
}

func (s *Store) BookingByID(_ context.Context, id string) (*model.BookingDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	d := s.detail(b)
	return &d, nil
}

func (s *Store) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.bySlot, b.SlotID)
	delete(s.bookings, id)
	return nil
}

func (s *Store) BookingsByUser(_ context.Context, userID string) ([]model.BookingDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(func(b bookingRow) bool { return b.UserID == userID }), nil
}

func (s *Store) AllBookings(_ context.Context) ([]model.BookingDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(func(bookingRow) bool { return true }), nil
}

// list returns matching bookings newest first; seq breaks created_at ties.
func (s *Store) list(keep func(bookingRow) bool) []model.BookingDetail {
	rows := make([]bookingRow, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			rows = append(rows, b)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]model.BookingDetail, 0, len(rows))
	for _, b := range rows {
		out = append(out, s.detail(b))
	}
	return out
}

func (s *Store) detail(b bookingRow) model.BookingDetail {
	d := model.BookingDetail{Booking: b.Booking}
	if u, ok := s.users[b.UserID]; ok {
		d.UserName, d.UserEmail = &u.Name, &u.Email
	}
	if sl, ok := s.slots[b.SlotID]; ok {
		d.SlotStart, d.SlotEnd = &sl.StartAt, &sl.EndAt
	}
	return d
}
