package rpc

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

func (m *User) marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Email)
	b = appendString(b, 4, m.Role)
	b = appendTime(b, 5, m.CreatedAt)
	return b
}

func (m *User) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.Name)
		case 3:
			return consumeString(typ, b, &m.Email)
		case 4:
			return consumeString(typ, b, &m.Role)
		case 5:
			return consumeTime(typ, b, &m.CreatedAt)
		}
		return 0
	})
}

type Slot struct {
	ID        string
	StartAt   time.Time
	EndAt     time.Time
	IsBooked  bool
	CreatedAt time.Time
}

func (m *Slot) marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendTime(b, 2, m.StartAt)
	b = appendTime(b, 3, m.EndAt)
	b = appendBool(b, 4, m.IsBooked)
	b = appendTime(b, 5, m.CreatedAt)
	return b
}

func (m *Slot) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeTime(typ, b, &m.StartAt)
		case 3:
			return consumeTime(typ, b, &m.EndAt)
		case 4:
			return consumeBool(typ, b, &m.IsBooked)
		case 5:
			return consumeTime(typ, b, &m.CreatedAt)
		}
		return 0
	})
}

// Booking carries optional owner and slot summaries; nil means the related
// row is gone.
type Booking struct {
	ID        string
	UserID    string
	SlotID    string
	UserName  *string
	UserEmail *string
	SlotStart *time.Time
	SlotEnd   *time.Time
	CreatedAt time.Time
}

func (m *Booking) marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.UserID)
	b = appendString(b, 3, m.SlotID)
	b = appendOptString(b, 4, m.UserName)
	b = appendOptString(b, 5, m.UserEmail)
	if m.SlotStart != nil {
		b = appendTime(b, 6, *m.SlotStart)
	}
	if m.SlotEnd != nil {
		b = appendTime(b, 7, *m.SlotEnd)
	}
	b = appendTime(b, 8, m.CreatedAt)
	return b
}

func (m *Booking) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.UserID)
		case 3:
			return consumeString(typ, b, &m.SlotID)
		case 4:
			return consumeOptString(typ, b, &m.UserName)
		case 5:
			return consumeOptString(typ, b, &m.UserEmail)
		case 6:
			return consumeOptTime(typ, b, &m.SlotStart)
		case 7:
			return consumeOptTime(typ, b, &m.SlotEnd)
		case 8:
			return consumeTime(typ, b, &m.CreatedAt)
		}
		return 0
	})
}

type Empty struct{}

func (*Empty) marshal() []byte { return nil }

func (*Empty) unmarshal(b []byte) error {
	return fields(b, func(protowire.Number, protowire.Type, []byte) int { return 0 })
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

func (m *RegisterRequest) marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Email)
	b = appendString(b, 3, m.Password)
	return b
}

func (m *RegisterRequest) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeString(typ, b, &m.Email)
		case 3:
			return consumeString(typ, b, &m.Password)
		}
		return 0
	})
}

type RegisterResponse struct {
	User *User
}

func (m *RegisterResponse) marshal() []byte {
	if m.User == nil {
		return nil
	}
	return appendMessage(nil, 1, m.User)
}

func (m *RegisterResponse) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			m.User = &User{}
			return consumeMessage(typ, b, m.User)
		}
		return 0
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Password)
	return b
}

func (m *LoginRequest) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Email)
		case 2:
			return consumeString(typ, b, &m.Password)
		}
		return 0
	})
}

type LoginResponse struct {
	Token string
	Role  string
	User  *User
}

func (m *LoginResponse) marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Token)
	b = appendString(b, 2, m.Role)
	if m.User != nil {
		b = appendMessage(b, 3, m.User)
	}
	return b
}

func (m *LoginResponse) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Token)
		case 2:
			return consumeString(typ, b, &m.Role)
		case 3:
			m.User = &User{}
			return consumeMessage(typ, b, m.User)
		}
		return 0
	})
}

// ListSlotsRequest bounds are YYYY-MM-DD; leave either empty for the
// default window.
type ListSlotsRequest struct {
	From string
	To   string
}

func (m *ListSlotsRequest) marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.From)
	b = appendString(b, 2, m.To)
	return b
}

func (m *ListSlotsRequest) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.From)
		case 2:
			return consumeString(typ, b, &m.To)
		}
		return 0
	})
}

type ListSlotsResponse struct {
	Slots []*Slot
}

func (m *ListSlotsResponse) marshal() []byte {
	var b []byte
	for _, s := range m.Slots {
		b = appendMessage(b, 1, s)
	}
	return b
}

func (m *ListSlotsResponse) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 {
			return 0
		}
		s := &Slot{}
		n := consumeMessage(typ, b, s)
		if n > 0 {
			m.Slots = append(m.Slots, s)
		}
		return n
	})
}

type BookRequest struct {
	SlotID string
}

func (m *BookRequest) marshal() []byte { return appendString(nil, 1, m.SlotID) }

func (m *BookRequest) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.SlotID)
		}
		return 0
	})
}

type BookResponse struct {
	Booking *Booking
}

func (m *BookResponse) marshal() []byte {
	if m.Booking == nil {
		return nil
	}
	return appendMessage(nil, 1, m.Booking)
}

func (m *BookResponse) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			m.Booking = &Booking{}
			return consumeMessage(typ, b, m.Booking)
		}
		return 0
	})
}

type CancelRequest struct {
	BookingID string
}

func (m *CancelRequest) marshal() []byte { return appendString(nil, 1, m.BookingID) }

func (m *CancelRequest) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.BookingID)
		}
		return 0
	})
}

type CancelResponse struct {
	BookingID string
}

func (m *CancelResponse) marshal() []byte { return appendString(nil, 1, m.BookingID) }

func (m *CancelResponse) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, &m.BookingID)
		}
		return 0
	})
}

type ListBookingsResponse struct {
	Bookings []*Booking
}

func (m *ListBookingsResponse) marshal() []byte {
	var b []byte
	for _, bk := range m.Bookings {
		b = appendMessage(b, 1, bk)
	}
	return b
}

func (m *ListBookingsResponse) unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 {
			return 0
		}
		bk := &Booking{}
		n := consumeMessage(typ, b, bk)
		if n > 0 {
			m.Bookings = append(m.Bookings, bk)
		}
		return n
	})
}
