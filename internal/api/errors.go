package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError represents an error response rejected before the engine runs.
type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{Code: code, Message: message, StatusCode: statusCode}
}

var (
	ErrMissingParameter = &APIError{
		Code:       "missing_parameter",
		Message:    "Required parameter is missing",
		StatusCode: http.StatusBadRequest,
	}

	ErrInvalidParameter = &APIError{
		Code:       "invalid_parameter",
		Message:    "Parameter value is invalid",
		StatusCode: http.StatusBadRequest,
	}
)

// RespondWithError writes an error response to the client.
func RespondWithError(c *gin.Context, err *APIError) {
	requestID, _ := c.Get("request_id")
	reqIDStr, _ := requestID.(string)

	c.JSON(err.StatusCode, ErrorResponse{
		Error:     err.Code,
		Message:   err.Message,
		RequestID: reqIDStr,
	})
}

// RespondWithMissingParam writes a missing parameter error.
func RespondWithMissingParam(c *gin.Context, param string) {
	RespondWithError(c, NewAPIError(
		"missing_parameter",
		fmt.Sprintf("Required parameter '%s' is missing", param),
		http.StatusBadRequest,
	))
}

// RespondWithInvalidParam writes an invalid parameter error.
func RespondWithInvalidParam(c *gin.Context, field, message string) {
	RespondWithError(c, NewAPIError(
		"invalid_parameter",
		fmt.Sprintf("Invalid value for '%s': %s", field, message),
		http.StatusBadRequest,
	))
}

// statusForKind maps an engine.ErrorKind string to the HTTP status code
// for the /path response, per the surfaced kinds of spec.md §7.
func statusForKind(kind string) int {
	switch kind {
	case "bad_input":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusOK // valid search outcome, not a request error
	case "timeout":
		return http.StatusGatewayTimeout
	case "internal":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
