package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

// Ledger records who holds which slot. Every call takes the caller that the
// gate resolved; nothing here reads identity from the context.
type Ledger struct {
	slots    SlotRepository
	bookings BookingRepository
	now      func() time.Time
	log      *slog.Logger
}

// Book reserves slotID for caller. When two callers race for the same slot
// exactly one wins; the other gets SLOT_TAKEN.
func (l *Ledger) Book(ctx context.Context, caller *model.User, slotID string) (*model.BookingDetail, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return nil, apperr.ErrMissingSlotID
	}

	slot, err := l.slots.SlotByID(ctx, slotID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.ErrSlotNotFound
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	// fast path; the unique constraint below is authoritative
	if slot.Booked {
		return nil, apperr.ErrSlotTaken
	}

	b := &model.Booking{ID: uuid.NewString(), UserID: caller.ID, SlotID: slot.ID}
	switch err := l.bookings.CreateBooking(ctx, b); {
	case errors.Is(err, store.ErrConflict):
		l.log.Info("booking race lost", "slot_id", slot.ID, "user_id", caller.ID)
		return nil, apperr.ErrSlotTaken
	case errors.Is(err, store.ErrNotFound):
		// the slot was just read, so the missing row is the user
		return nil, apperr.ErrUserNotFound
	case err != nil:
		return nil, apperr.Internal(err)
	}

	l.log.Info("slot booked", "booking_id", b.ID, "slot_id", slot.ID, "user_id", caller.ID)
	// built from rows already in hand: a cancel may remove the booking
	// before it could be read back
	return &model.BookingDetail{
		Booking:   *b,
		UserName:  &caller.Name,
		UserEmail: &caller.Email,
		SlotStart: &slot.StartAt,
		SlotEnd:   &slot.EndAt,
	}, nil
}

// Cancel deletes a booking, freeing its slot. Patients may cancel only their
// own bookings, admins any. Bookings whose slot has started cannot be
// cancelled by anyone.
func (l *Ledger) Cancel(ctx context.Context, caller *model.User, bookingID string) error {
	d, err := l.bookings.BookingByID(ctx, bookingID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrBookingNotFound
	}
	if err != nil {
		return apperr.Internal(err)
	}
	if !caller.IsAdmin() && d.UserID != caller.ID {
		return apperr.Forbidden("You can only cancel your own bookings")
	}
	if d.SlotStart != nil && d.SlotStart.Before(l.now()) {
		return apperr.ErrPastBooking
	}

	if err := l.bookings.DeleteBooking(ctx, d.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.ErrBookingNotFound
		}
		return apperr.Internal(err)
	}
	l.log.Info("booking cancelled", "booking_id", d.ID, "slot_id", d.SlotID, "by", caller.ID)
	return nil
}

func (l *Ledger) ListForUser(ctx context.Context, caller *model.User) ([]model.BookingDetail, error) {
	if caller.Role != model.RolePatient {
		return nil, apperr.Forbidden("Only patients can access their bookings")
	}
	out, err := l.bookings.BookingsByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (l *Ledger) ListAll(ctx context.Context, caller *model.User) ([]model.BookingDetail, error) {
	if !caller.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can access all bookings")
	}
	out, err := l.bookings.AllBookings(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
