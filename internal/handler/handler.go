// Package handler exposes the booking services over JSON/HTTP with echo.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/service"
)

type Handler struct {
	svc *service.Services
	log *slog.Logger
}

func New(svc *service.Services, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// caller runs the gate against the request's Authorization header.
func (h *Handler) caller(c echo.Context) (*model.User, error) {
	return h.svc.Gate.Authorize(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "OK", Message: "API is running"})
}

// ErrorHandler renders every failure as {"error": {"code", "message"}}.
// Unclassified errors are logged and reported as INTERNAL_ERROR without
// their cause.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := http.StatusInternalServerError, apperr.Response{}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			body = apperr.Response{Error: apperr.Body{Code: httpCode(he.Code), Message: http.StatusText(he.Code)}}
		} else {
			e := apperr.As(err)
			if e.Code == apperr.CodeInternal {
				log.Error("request failed",
					"method", c.Request().Method, "path", c.Path(), "err", err)
			}
			status, body = apperr.HTTPStatus(e.Code), e.Response()
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error("write error response", "err", err)
		}
	}
}

func httpCode(status int) apperr.Code {
	switch {
	case status == http.StatusNotFound, status == http.StatusMethodNotAllowed:
		return apperr.CodeNotFound
	case status == http.StatusTooManyRequests:
		return apperr.CodeTooManyRequests
	case status == http.StatusUnauthorized:
		return apperr.CodeInvalidToken
	case status == http.StatusForbidden:
		return apperr.CodeForbidden
	case status < http.StatusInternalServerError:
		return apperr.CodeBadRequest
	default:
		return apperr.CodeInternal
	}
}
