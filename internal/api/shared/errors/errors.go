package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/remixrite/remix-ledger/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeNoClipsResolved  ErrorCode = "no_clips_resolved"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Partial success (207)
	ErrCodeSettlementIncomplete ErrorCode = "settlement_incomplete"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewRateLimitedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeRateLimited,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewServiceError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomainError maps a service error to its HTTP status and API error.
// Details never carry more than stage names and validation messages.
func FromDomainError(err error) (int, *APIError) {
	var (
		validationErr   *domain.ValidationError
		resolutionErr   *domain.ResolutionError
		partialErr      *domain.PartialSettlementError
		registrationErr *domain.RegistrationError
		serviceErr      *domain.ExternalServiceError
		persistenceErr  *domain.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, NewValidationError(validationErr.Error())

	case errors.As(err, &resolutionErr):
		return http.StatusBadRequest, &APIError{
			Code:    ErrCodeNoClipsResolved,
			Message: "No valid clips found",
			Details: fmt.Sprintf("none of the %d requested clips could be resolved", resolutionErr.Requested),
		}

	case errors.Is(err, domain.ErrRemixNotFound):
		return http.StatusNotFound, NewNotFoundError("Remix not found")

	case errors.Is(err, domain.ErrClipNotFound):
		return http.StatusNotFound, NewNotFoundError("Clip not found")

	case errors.As(err, &partialErr):
		return http.StatusMultiStatus, &APIError{
			Code:    ErrCodeSettlementIncomplete,
			Message: "Remix registered but royalty settlement is incomplete",
			Details: fmt.Sprintf("%d distribution(s) pending reconciliation", len(partialErr.Failed)),
		}

	case errors.As(err, &serviceErr):
		details := []string{fmt.Sprintf("stage: %s", serviceErr.Stage)}
		if errors.As(err, &registrationErr) {
			details = append(details,
				fmt.Sprintf("ledger step: %s", registrationErr.Stage),
				fmt.Sprintf("last completed: %s", registrationErr.LastCompleted))
		}
		if errors.Is(err, domain.ErrUnknownOutcome) {
			details = append(details, "ledger outcome unknown")
		}
		return http.StatusInternalServerError, NewServiceError(
			fmt.Sprintf("Pipeline failed during %s", serviceErr.Stage), details...)

	case errors.As(err, &persistenceErr):
		return http.StatusInternalServerError, NewDatabaseError("Database operation failed", persistenceErr.Op)

	default:
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}
}
