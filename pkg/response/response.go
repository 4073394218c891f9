package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified API response envelope. Reason carries the
// machine-readable error code so scanners can branch on expired vs inactive
// without parsing the message; it is empty on success.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Reason  string      `json:"reason,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// AppError represents a structured application error with HTTP status and a
// machine-readable reason code.
type AppError struct {
	HTTPStatus int    // HTTP status code (e.g. 400, 404, 500)
	Reason     string // Machine-readable reason (e.g. "validation", "expired")
	Message    string // Human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

// Reason codes for invalid-state errors on access validation.
const (
	ReasonValidation         = "validation"
	ReasonNotFound           = "not_found"
	ReasonConflict           = "conflict"
	ReasonInactive           = "inactive"
	ReasonMembershipInactive = "membership_inactive"
	ReasonExpired            = "expired"
	ReasonExhausted          = "exhausted"
	ReasonUnauthorized       = "unauthorized"
	ReasonInternal           = "internal"
)

// Pre-defined error constructors

// NewValidation reports missing or malformed input.
func NewValidation(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Reason: ReasonValidation, Message: msg}
}

// NewNotFound reports a referenced entity that does not exist.
func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Reason: ReasonNotFound, Message: msg}
}

// NewConflict reports a state transition that is not permitted.
func NewConflict(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Reason: ReasonConflict, Message: msg}
}

// NewInvalidState reports an access-code validation failure with a reason
// code: inactive, membership_inactive or expired.
func NewInvalidState(reason, msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Reason: reason, Message: msg}
}

// NewExhausted reports an exhausted retry budget.
func NewExhausted(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Reason: ReasonExhausted, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Reason: ReasonUnauthorized, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Reason: ReasonInternal, Message: msg}
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response. If err is an *AppError, its status is used;
// otherwise a generic 500 internal server error is returned. Stack details
// never leak into the envelope.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{
			Success: false,
			Message: appErr.Message,
			Reason:  appErr.Reason,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Message: err.Error(),
	})
}

// Convenience error response functions

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Success: false, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Success: false, Message: msg})
}

func ServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: msg})
}
