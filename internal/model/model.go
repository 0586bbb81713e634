package model

import "time"

type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Slot is a fixed bookable interval. Booked is derived from the bookings
// table at read time, never stored.
type Slot struct {
	ID        string
	StartAt   time.Time
	EndAt     time.Time
	Booked    bool
	CreatedAt time.Time
}

type Booking struct {
	ID        string
	UserID    string
	SlotID    string
	CreatedAt time.Time
}

// BookingDetail is a booking joined with its owner and slot. The summary
// pointers are nil only when the related row is gone.
type BookingDetail struct {
	Booking
	UserName  *string
	UserEmail *string
	SlotStart *time.Time
	SlotEnd   *time.Time
}
