package rpc

import (
	"context"
	"time"

	"appointment-booking-api/internal/model"
)

func (s *Server) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	u, err := s.svc.Identity.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{User: toUser(u)}, nil
}

func (s *Server) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.svc.Identity.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	tok, err := s.svc.Gate.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: tok, Role: string(u.Role), User: toUser(u)}, nil
}

func (s *Server) Logout(ctx context.Context, _ *Empty) (*Empty, error) {
	if err := s.svc.Gate.Logout(ctx, authorization(ctx)); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *Server) ListSlots(ctx context.Context, req *ListSlotsRequest) (*ListSlotsResponse, error) {
	slots, err := s.svc.Slots.Browse(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}
	out := &ListSlotsResponse{Slots: make([]*Slot, 0, len(slots))}
	for _, sl := range slots {
		out.Slots = append(out.Slots, &Slot{
			ID:        sl.ID,
			StartAt:   sl.StartAt,
			EndAt:     sl.EndAt,
			IsBooked:  sl.Booked,
			CreatedAt: sl.CreatedAt,
		})
	}
	return out, nil
}

func (s *Server) Book(ctx context.Context, req *BookRequest) (*BookResponse, error) {
	u, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.svc.Ledger.Book(ctx, u, req.SlotID)
	if err != nil {
		return nil, err
	}
	return &BookResponse{Booking: toBooking(b)}, nil
}

func (s *Server) Cancel(ctx context.Context, req *CancelRequest) (*CancelResponse, error) {
	u, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Ledger.Cancel(ctx, u, req.BookingID); err != nil {
		return nil, err
	}
	return &CancelResponse{BookingID: req.BookingID}, nil
}

func (s *Server) MyBookings(ctx context.Context, _ *Empty) (*ListBookingsResponse, error) {
	u, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.svc.Ledger.ListForUser(ctx, u)
	if err != nil {
		return nil, err
	}
	return toBookings(out), nil
}

func (s *Server) AllBookings(ctx context.Context, _ *Empty) (*ListBookingsResponse, error) {
	u, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.svc.Ledger.ListAll(ctx, u)
	if err != nil {
		return nil, err
	}
	return toBookings(out), nil
}

func toUser(u *model.User) *User {
	return &User{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

func toBooking(b *model.BookingDetail) *Booking {
	return &Booking{
		ID:        b.ID,
		UserID:    b.UserID,
		SlotID:    b.SlotID,
		UserName:  b.UserName,
		UserEmail: b.UserEmail,
		SlotStart: utc(b.SlotStart),
		SlotEnd:   utc(b.SlotEnd),
		CreatedAt: b.CreatedAt,
	}
}

func toBookings(in []model.BookingDetail) *ListBookingsResponse {
	out := &ListBookingsResponse{Bookings: make([]*Booking, 0, len(in))}
	for i := range in {
		out.Bookings = append(out.Bookings, toBooking(&in[i]))
	}
	return out
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
