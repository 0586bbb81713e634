// Package service holds the booking rules: identity, slot generation, the
// booking ledger and the authorization gate. Both transports call into it and
// pass the authorized caller explicitly.
package service

import (
	"context"
	"log/slog"
	"time"

	"appointment-booking-api/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
}

type SlotRepository interface {
	InsertSlots(ctx context.Context, slots []model.Slot) (int, error)
	AvailableSlots(ctx context.Context, from, to time.Time) ([]model.Slot, error)
	SlotByID(ctx context.Context, id string) (*model.Slot, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b *model.Booking) error
	BookingByID(ctx context.Context, id string) (*model.BookingDetail, error)
	DeleteBooking(ctx context.Context, id string) error
	BookingsByUser(ctx context.Context, userID string) ([]model.BookingDetail, error)
	AllBookings(ctx context.Context) ([]model.BookingDetail, error)
}

// Repository is satisfied by store.Store and memory.Store.
type Repository interface {
	UserRepository
	SlotRepository
	BookingRepository
}

// Revocations tracks logged out tokens by ID.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

type Options struct {
	Secret      string
	TokenTTL    time.Duration
	Slots       SlotPolicy
	Revocations Revocations
	Clock       func() time.Time
	Logger      *slog.Logger
}

type Services struct {
	Identity *Identity
	Slots    *Slots
	Ledger   *Ledger
	Gate     *Gate
}

func New(repo Repository, opts Options) *Services {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Services{
		Identity: &Identity{users: repo, log: opts.Logger},
		Slots:    &Slots{repo: repo, policy: opts.Slots.withDefaults(), now: opts.Clock, log: opts.Logger},
		Ledger:   &Ledger{slots: repo, bookings: repo, now: opts.Clock, log: opts.Logger},
		Gate: &Gate{
			users:   repo,
			secret:  opts.Secret,
			ttl:     opts.TokenTTL,
			revoked: opts.Revocations,
			now:     opts.Clock,
		},
	}
}
