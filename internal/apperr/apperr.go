// Package apperr defines the machine-readable failure codes shared by the
// service layer and both transports.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	// validation
	CodeMissingFields      Code = "MISSING_FIELDS"
	CodeMissingCredentials Code = "MISSING_CREDENTIALS"
	CodeMissingSlotID      Code = "MISSING_SLOT_ID"
	CodeInvalidDateFormat  Code = "INVALID_DATE_FORMAT"
	CodeInvalidDateRange   Code = "INVALID_DATE_RANGE"
	CodeBadRequest         Code = "BAD_REQUEST"

	// authentication
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeTokenMissing       Code = "TOKEN_MISSING"
	CodeInvalidTokenFormat Code = "INVALID_TOKEN_FORMAT"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeUserNotFound       Code = "USER_NOT_FOUND"

	CodeForbidden       Code = "FORBIDDEN"
	CodeSlotNotFound    Code = "SLOT_NOT_FOUND"
	CodeBookingNotFound Code = "BOOKING_NOT_FOUND"
	CodeNotFound        Code = "NOT_FOUND"
	CodeEmailExists     Code = "EMAIL_EXISTS"
	CodeSlotTaken       Code = "SLOT_TAKEN"
	CodePastBooking     Code = "PAST_BOOKING"
	CodeTooManyRequests Code = "TOO_MANY_REQUESTS"
	CodeInternal        Code = "INTERNAL_ERROR"
)

// Error carries a stable code, a human readable message and, for internal
// failures, the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on code so that wrapped copies compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Err: err}
}

var (
	ErrMissingFields      = New(CodeMissingFields, "Name, email, and password are required")
	ErrMissingCredentials = New(CodeMissingCredentials, "Email and password are required")
	ErrMissingSlotID      = New(CodeMissingSlotID, "Slot ID is required")
	ErrInvalidDateFormat  = New(CodeInvalidDateFormat, "Date format should be YYYY-MM-DD")
	ErrInvalidDateRange   = New(CodeInvalidDateRange, "Requested date range is too large")

	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password")
	ErrTokenMissing       = New(CodeTokenMissing, "Authentication token is required")
	ErrInvalidTokenFormat = New(CodeInvalidTokenFormat, "Token format should be: Bearer <token>")
	ErrTokenExpired       = New(CodeTokenExpired, "Token has expired")
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid token")
	ErrUserNotFound       = New(CodeUserNotFound, "User not found")

	ErrSlotNotFound    = New(CodeSlotNotFound, "Slot not found")
	ErrBookingNotFound = New(CodeBookingNotFound, "Booking not found")
	ErrEmailExists     = New(CodeEmailExists, "User with this email already exists")
	ErrSlotTaken       = New(CodeSlotTaken, "This slot is already booked")
	ErrPastBooking     = New(CodePastBooking, "Cannot cancel past appointments")
	ErrTooManyRequests = New(CodeTooManyRequests, "Too many requests")
)

// Forbidden builds a FORBIDDEN error with an operation specific message.
func Forbidden(msg string) *Error {
	return New(CodeForbidden, msg)
}

// As extracts an *Error from err. Anything unrecognised becomes INTERNAL_ERROR.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return As(err).Code
}

func HTTPStatus(code Code) int {
	switch code {
	case CodeMissingFields, CodeMissingCredentials, CodeMissingSlotID,
		CodeInvalidDateFormat, CodeInvalidDateRange, CodeBadRequest, CodePastBooking:
		return http.StatusBadRequest
	case CodeInvalidCredentials, CodeTokenMissing, CodeInvalidTokenFormat,
		CodeTokenExpired, CodeInvalidToken, CodeUserNotFound:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeSlotNotFound, CodeBookingNotFound, CodeNotFound:
		return http.StatusNotFound
	case CodeEmailExists, CodeSlotTaken:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Response is the JSON error envelope: {"error": {"code": ..., "message": ...}}.
type Response struct {
	Error Body `json:"error"`
}

type Body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Response() Response {
	return Response{Error: Body{Code: e.Code, Message: e.Message}}
}
