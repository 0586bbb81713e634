package handler

import (
	"time"

	"appointment-booking-api/internal/model"
)

type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

type SlotResponse struct {
	ID        string    `json:"id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingResponse embeds owner and slot summaries. They are null only when
// the related row no longer exists.
type BookingResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	SlotID    string     `json:"slot_id"`
	UserName  *string    `json:"user_name"`
	UserEmail *string    `json:"user_email"`
	SlotStart *time.Time `json:"slot_start"`
	SlotEnd   *time.Time `json:"slot_end"`
	CreatedAt time.Time  `json:"created_at"`
}

func toUser(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt.UTC()}
}

func toSlots(in []model.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(in))
	for _, s := range in {
		out = append(out, SlotResponse{
			ID:        s.ID,
			StartAt:   s.StartAt.UTC(),
			EndAt:     s.EndAt.UTC(),
			IsBooked:  s.Booked,
			CreatedAt: s.CreatedAt.UTC(),
		})
	}
	return out
}

func toBooking(b *model.BookingDetail) BookingResponse {
	r := BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		SlotID:    b.SlotID,
		UserName:  b.UserName,
		UserEmail: b.UserEmail,
		CreatedAt: b.CreatedAt.UTC(),
	}
	if b.SlotStart != nil {
		t := b.SlotStart.UTC()
		r.SlotStart = &t
	}
	if b.SlotEnd != nil {
		t := b.SlotEnd.UTC()
		r.SlotEnd = &t
	}
	return r
}

func toBookings(in []model.BookingDetail) []BookingResponse {
	out := make([]BookingResponse, 0, len(in))
	for i := range in {
		out = append(out, toBooking(&in[i]))
	}
	return out
}
