package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds surfaced by the validation and lifecycle logic. They are
// deterministic failures detected before any write happens, so callers can
// fix the input and retry.
const (
	KindInvalidAmount        = "invalid_amount"
	KindEmptyAssignmentSet   = "empty_assignment_set"
	KindDuplicateAssignee    = "duplicate_assignee"
	KindReconciliationFailed = "reconciliation_failed"
	KindSpendNotOpen         = "spend_not_open"
)

// AppError represents a custom application error
type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common error constructors
func NewValidationError(kind, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    kind,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewConflictError reports a lifecycle violation, e.g. mutating a CLOSED spend.
func NewConflictError(kind, message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    kind,
		Message: message,
	}
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}

	// Default to internal server error
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
