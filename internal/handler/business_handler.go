package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"trustmart/internal/auth"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/response"
	"trustmart/internal/service"
	"trustmart/internal/validation"
)

// BusinessHandler serves the public business directory, rating
// submission, and the cookie-guarded dashboard.
type BusinessHandler struct {
	svc       service.BusinessService
	validator *validation.Validator
}

// NewBusinessHandler creates a handler layer.
func NewBusinessHandler(svc service.BusinessService, validator *validation.Validator) *BusinessHandler {
	return &BusinessHandler{svc: svc, validator: validator}
}

// ListBusinesses godoc
// @Summary List businesses with rating summaries
// @Tags businesses
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /businesses [get]
func (h *BusinessHandler) ListBusinesses(c echo.Context) error {
	list, err := h.svc.ListBusinesses(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeBusinessFetchError)
	}

	message := "Businesses fetched successfully"
	if list.Cached {
		message = "Businesses fetched successfully (cached)"
	}
	return response.Success(c, http.StatusOK, message, list)
}

// GetBusiness godoc
// @Summary Business detail with ratings
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /businesses/{id} [get]
func (h *BusinessHandler) GetBusiness(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Error(c, http.StatusBadRequest,
			"Invalid business ID", apperrors.CodeValidationError, nil)
	}

	detail, err := h.svc.GetBusiness(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeBusinessFetchError)
	}

	return response.Success(c, http.StatusOK, "Business fetched successfully", detail)
}

// SubmitRating godoc
// @Summary Submit a star rating for a business
// @Tags businesses
// @Accept json
// @Produce json
// @Param request body validation.RatingCreate true "Rating payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /ratings [post]
func (h *BusinessHandler) SubmitRating(c echo.Context) error {
	var req validation.RatingCreate
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	rating, err := h.svc.SubmitRating(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeRatingCreationFailed)
	}

	return response.Success(c, http.StatusCreated, "Rating submitted successfully", rating)
}

// Dashboard serves the business dashboard data behind the session
// cookie. The page guard has already verified the cookie and injected
// the identity; a non-business identity is bounced to login.
func (h *BusinessHandler) Dashboard(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok || identity.Role != service.RoleBusiness {
		return c.Redirect(http.StatusFound, "/login")
	}

	detail, err := h.svc.Dashboard(c.Request().Context(), identity.Email)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeBusinessFetchError)
	}

	return response.Success(c, http.StatusOK, "Dashboard data fetched successfully", detail)
}

// LoginPage is the redirect target for failed page-route sessions.
func (h *BusinessHandler) LoginPage(c echo.Context) error {
	return c.HTML(http.StatusOK, `<html><body><h1>Sign in</h1><p>POST /api/auth/business-login to start a session.</p></body></html>`)
}
