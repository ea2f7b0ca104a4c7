package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"trustmart/internal/auth"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/response"
	"trustmart/internal/service"
	"trustmart/internal/validation"
)

// AuthHandler handles login, signup and profile endpoints.
type AuthHandler struct {
	svc       service.AuthService
	validator *validation.Validator
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{svc: svc, validator: validator}
}

// Login godoc
// @Summary User login
// @Description Issues a signed bearer token valid for 24 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.Login true "Login credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req validation.Login
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	token, user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeInternalError)
	}

	return response.Success(c, http.StatusOK, "Login successful", echo.Map{
		"user":      user,
		"token":     token,
		"expiresIn": "24h",
	})
}

// Profile godoc
// @Summary Authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	user, err := h.svc.Profile(c.Request().Context(), identity.ID)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeUserFetchError)
	}

	return response.Success(c, http.StatusOK, "Profile fetched successfully", user)
}

// Signup godoc
// @Summary Business signup
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.BusinessSignup true "Business registration"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req validation.BusinessSignup
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	business, err := h.svc.SignupBusiness(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeInternalError)
	}

	return response.Success(c, http.StatusCreated, "Business registered successfully", business)
}

// BusinessLogin godoc
// @Summary Business login
// @Description Sets the session cookie used by the dashboard pages.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.Login true "Login credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /auth/business-login [post]
func (h *AuthHandler) BusinessLogin(c echo.Context) error {
	var req validation.Login
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	token, business, err := h.svc.LoginBusiness(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeInternalError)
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenExpiry),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, http.StatusOK, "Login successful", echo.Map{
		"business":  business,
		"expiresIn": "24h",
	})
}
