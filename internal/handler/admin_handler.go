package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trustmart/internal/auth"
	apperrors "trustmart/internal/errors"
	"trustmart/internal/response"
	"trustmart/internal/service"
	"trustmart/internal/validation"
)

// AdminHandler bundles the admin API endpoints. Admin reads and writes
// bypass the cache.
type AdminHandler struct {
	svc       service.AdminService
	validator *validation.Validator
}

// NewAdminHandler creates a handler layer.
func NewAdminHandler(svc service.AdminService, validator *validation.Validator) *AdminHandler {
	return &AdminHandler{svc: svc, validator: validator}
}

// Dashboard godoc
// @Summary Admin dashboard data
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	dashboard, err := h.svc.Dashboard(c.Request().Context(), identity)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeInternalError)
	}

	return response.Success(c, http.StatusOK,
		"Admin dashboard data retrieved successfully", dashboard)
}

// CreateAnnouncement godoc
// @Summary Create a system announcement
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.AnnouncementCreate true "Announcement payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin [post]
func (h *AdminHandler) CreateAnnouncement(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	var req validation.AnnouncementCreate
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	announcement, err := h.svc.CreateAnnouncement(c.Request().Context(), identity, &req)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeInternalError)
	}

	return response.Success(c, http.StatusCreated,
		"System announcement created successfully", announcement)
}
