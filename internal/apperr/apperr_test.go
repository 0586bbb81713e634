package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeMissingFields, http.StatusBadRequest},
		{CodeInvalidDateFormat, http.StatusBadRequest},
		{CodePastBooking, http.StatusBadRequest},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeUserNotFound, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeBookingNotFound, http.StatusNotFound},
		{CodeSlotTaken, http.StatusConflict},
		{CodeEmailExists, http.StatusConflict},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestIsMatchesOnCode(t *testing.T) {
	wrapped := fmt.Errorf("book: %w", New(CodeSlotTaken, "lost the race"))
	assert.True(t, errors.Is(wrapped, ErrSlotTaken))
	assert.False(t, errors.Is(wrapped, ErrSlotNotFound))
}

func TestAsFallsBackToInternal(t *testing.T) {
	cause := errors.New("connection reset")
	e := As(cause)
	assert.Equal(t, CodeInternal, e.Code)
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, CodeForbidden, CodeOf(Forbidden("nope")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestResponseEnvelope(t *testing.T) {
	r := ErrSlotTaken.Response()
	assert.Equal(t, CodeSlotTaken, r.Error.Code)
	assert.Equal(t, "This slot is already booked", r.Error.Message)
}
