package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"appointment-booking-api/internal/apperr"
)

type BookRequest struct {
	SlotID string `json:"slotId" validate:"required"`
}

type BookResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type CancelResponse struct {
	Message   string `json:"message"`
	BookingID string `json:"booking_id"`
}

// Book godoc
// @Summary Book a slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookRequest true "Slot to book"
// @Success 201 {object} BookResponse
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Failure 409 {object} apperr.Response
// @Router /book [post]
func (h *Handler) Book(c echo.Context) error {
	user, err := h.caller(c)
	if err != nil {
		return err
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return apperr.ErrMissingSlotID
	}
	if err := c.Validate(&req); err != nil {
		return apperr.ErrMissingSlotID
	}

	b, err := h.svc.Ledger.Book(c.Request().Context(), user, req.SlotID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, BookResponse{
		Message: "Slot booked successfully",
		Booking: toBooking(b),
	})
}

// MyBookings godoc
// @Summary List the caller's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BookingResponse
// @Failure 401 {object} apperr.Response
// @Failure 403 {object} apperr.Response
// @Router /my-bookings [get]
func (h *Handler) MyBookings(c echo.Context) error {
	user, err := h.caller(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Ledger.ListForUser(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookings(out))
}

// AllBookings godoc
// @Summary List every booking (admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BookingResponse
// @Failure 401 {object} apperr.Response
// @Failure 403 {object} apperr.Response
// @Router /all-bookings [get]
func (h *Handler) AllBookings(c echo.Context) error {
	user, err := h.caller(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Ledger.ListAll(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookings(out))
}

// Cancel godoc
// @Summary Cancel a booking
// @Description Patients may cancel their own future bookings; admins any future booking.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} CancelResponse
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 403 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /cancel/{id} [delete]
func (h *Handler) Cancel(c echo.Context) error {
	user, err := h.caller(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.svc.Ledger.Cancel(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CancelResponse{Message: "Booking cancelled successfully", BookingID: id})
}
