package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "storefront-api/pkg/errors"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Pagination query parameter defaults. Page indexes are 0-based.
const (
	defaultPage = 0
	defaultSize = 10
)

// writeError translates service errors to HTTP responses. Typed errors
// carry their own status; anything else is an internal error whose detail
// stays out of the response body.
func writeError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)

	var code string
	switch status {
	case http.StatusBadRequest:
		code = "invalid_input"
	case http.StatusNotFound:
		code = "not_found"
	case http.StatusConflict:
		code = "conflict"
	default:
		code = "internal_error"
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "An internal error occurred"
	}

	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
