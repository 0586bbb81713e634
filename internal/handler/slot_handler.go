package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListSlots godoc
// @Summary List available slots
// @Description Missing slots in the range are generated first. Without both bounds the next seven days are used.
// @Tags slots
// @Produce json
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day (inclusive), YYYY-MM-DD"
// @Success 200 {array} SlotResponse
// @Failure 400 {object} apperr.Response
// @Router /slots [get]
func (h *Handler) ListSlots(c echo.Context) error {
	slots, err := h.svc.Slots.Browse(c.Request().Context(), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSlots(slots))
}
