package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"appointment-booking-api/internal/apperr"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	User  UserResponse `json:"user"`
}

// Register godoc
// @Summary Register a patient account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} apperr.Response
// @Failure 409 {object} apperr.Response
// @Failure 429 {object} apperr.Response
// @Router /register [post]
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.ErrMissingFields
	}
	if err := c.Validate(&req); err != nil {
		return apperr.ErrMissingFields
	}

	u, err := h.svc.Identity.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User:    toUser(u),
	})
}

// Login godoc
// @Summary Log in and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 429 {object} apperr.Response
// @Router /login [post]
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.ErrMissingCredentials
	}
	if err := c.Validate(&req); err != nil {
		return apperr.ErrMissingCredentials
	}

	u, err := h.svc.Identity.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	tok, err := h.svc.Gate.Issue(u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LoginResponse{Token: tok, Role: string(u.Role), User: toUser(u)})
}

// Logout godoc
// @Summary Revoke the presented access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} apperr.Response
// @Router /logout [post]
func (h *Handler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if err := h.svc.Gate.Logout(c.Request().Context(), auth); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
