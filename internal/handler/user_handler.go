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

// UserHandler bundles the users API endpoints.
type UserHandler struct {
	svc       service.UserService
	validator *validation.Validator
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{svc: svc, validator: validator}
}

// ListUsers godoc
// @Summary List users
// @Description Non-admin callers see only active users.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	list, err := h.svc.ListUsers(c.Request().Context(), identity)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeUserFetchError)
	}

	message := "Users fetched successfully"
	if list.Cached {
		message = "Users fetched successfully (cached)"
	}
	return response.Success(c, http.StatusOK, message, echo.Map{
		"users":          list.Users,
		"totalUsers":     list.TotalUsers,
		"cached":         list.Cached,
		"cacheTimestamp": list.CacheTimestamp,
		"requestedBy": echo.Map{
			"id":    identity.ID,
			"email": identity.Email,
			"role":  identity.Role,
		},
	})
}

// CreateUser godoc
// @Summary Create a user
// @Description Only admins may create records with role=admin.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.UserCreate true "User payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	var req validation.UserCreate
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	user, err := h.svc.CreateUser(c.Request().Context(), identity, &req)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeUserCreationFailed)
	}

	return response.Success(c, http.StatusCreated, "User created successfully", user)
}

// UpdateUser godoc
// @Summary Update a user
// @Description Non-admins may only update their own record and may not change role.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query int true "User ID"
// @Param request body validation.UserUpdate true "Partial user payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /users [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	id, ok := idFromQuery(c)
	if !ok {
		return missingID(c, "user")
	}

	var req validation.UserUpdate
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	// Self-service restriction, checked before validation so a
	// forbidden caller never learns which fields were invalid: a
	// non-admin may only update their own record, and may not change
	// the role field even on it.
	if !identity.IsAdmin() {
		if identity.ID != id {
			return respondServiceError(c, apperrors.ErrForbidden, apperrors.CodeUserUpdateFailed)
		}
		if req.Role != nil {
			return respondServiceError(c, apperrors.ErrForbidden, apperrors.CodeUserUpdateFailed)
		}
	}

	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), identity, id, &req)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeUserUpdateFailed)
	}

	return response.Success(c, http.StatusOK, "User updated successfully", user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id query int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /users [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	id, ok := idFromQuery(c)
	if !ok {
		return missingID(c, "user")
	}

	user, err := h.svc.DeleteUser(c.Request().Context(), identity, id)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeUserDeletionFailed)
	}

	return response.Success(c, http.StatusOK, "User deleted successfully", user)
}
