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

// TaskHandler bundles the tasks API endpoints.
type TaskHandler struct {
	svc       service.TaskService
	validator *validation.Validator
}

// NewTaskHandler creates a handler layer.
func NewTaskHandler(svc service.TaskService, validator *validation.Validator) *TaskHandler {
	return &TaskHandler{svc: svc, validator: validator}
}

// ListTasks godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	list, err := h.svc.ListTasks(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeTaskFetchError)
	}

	message := "Tasks fetched successfully"
	if list.Cached {
		message = "Tasks fetched successfully (cached)"
	}
	return response.Success(c, http.StatusOK, message, echo.Map{
		"tasks":          list.Tasks,
		"totalTasks":     list.TotalTasks,
		"completedTasks": list.CompletedTasks,
		"cached":         list.Cached,
		"cacheTimestamp": list.CacheTimestamp,
		"requestedBy": echo.Map{
			"id":    identity.ID,
			"email": identity.Email,
			"role":  identity.Role,
		},
	})
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.TaskCreate true "Task payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	var req validation.TaskCreate
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	task, err := h.svc.CreateTask(c.Request().Context(), identity, &req)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeTaskCreationFailed)
	}

	return response.Success(c, http.StatusCreated, "Task created successfully", task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query int true "Task ID"
// @Param request body validation.TaskUpdate true "Partial task payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /tasks [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	id, ok := idFromQuery(c)
	if !ok {
		return missingID(c, "task")
	}

	var req validation.TaskUpdate
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if fieldErrs := h.validator.Check(&req); fieldErrs != nil {
		return response.Error(c, http.StatusBadRequest,
			"Validation failed", apperrors.CodeValidationError, fieldErrs)
	}

	task, err := h.svc.UpdateTask(c.Request().Context(), identity, id, &req)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeTaskUpdateFailed)
	}

	return response.Success(c, http.StatusOK, "Task updated successfully", task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id query int true "Task ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /tasks [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	identity, _ := auth.IdentityFrom(c)

	id, ok := idFromQuery(c)
	if !ok {
		return missingID(c, "task")
	}

	task, err := h.svc.DeleteTask(c.Request().Context(), identity, id)
	if err != nil {
		return respondServiceError(c, err, apperrors.CodeTaskDeletionFailed)
	}

	return response.Success(c, http.StatusOK, "Task deleted successfully", task)
}
