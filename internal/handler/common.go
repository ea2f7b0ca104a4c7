package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "trustmart/internal/errors"
	"trustmart/internal/response"
)

// respondServiceError maps a service error into the error envelope.
// fallbackCode keys unexpected failures to the owning resource.
func respondServiceError(c echo.Context, err error, fallbackCode string) error {
	httpErr := apperrors.MapErrorToHTTP(err, fallbackCode)
	return response.Error(c, httpErr.StatusCode, httpErr.Message, httpErr.Code, httpErr.Details)
}

// idFromQuery reads the required ?id= parameter used by update and
// delete routes.
func idFromQuery(c echo.Context) (uint, bool) {
	raw := c.QueryParam("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// invalidBody answers a malformed JSON body.
func invalidBody(c echo.Context) error {
	return response.Error(c, http.StatusBadRequest,
		"Invalid request body", apperrors.CodeValidationError, nil)
}

// missingID answers a write route called without ?id=.
func missingID(c echo.Context, resource string) error {
	return response.Error(c, http.StatusBadRequest,
		"Missing "+resource+" ID in query parameters", apperrors.CodeValidationError, nil)
}
