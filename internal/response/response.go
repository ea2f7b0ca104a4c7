// Package response implements the envelope every API route answers with.
package response

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the machine-readable error code and optional details.
type ErrorBody struct {
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Success writes a success envelope with the given status.
func Success(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope with the given status and code.
func Error(c echo.Context, status int, message, code string, details interface{}) error {
	return c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Code:    code,
			Details: details,
		},
	})
}
