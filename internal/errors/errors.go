package errors

import "fmt"

// Error codes
const (
	ErrCodePhaseLocked          = "PHASE_LOCKED"
	ErrCodeInvalidPhase         = "INVALID_PHASE"
	ErrCodeDuplicateAchievement = "DUPLICATE_ACHIEVEMENT"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "PHASE_LOCKED", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so callers can test with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// NewPhaseLockedError creates a PHASE_LOCKED error for an attempt on a phase
// the user has not unlocked yet.
func NewPhaseLockedError(phase int) *AppError {
	return &AppError{
		Code:    ErrCodePhaseLocked,
		Message: fmt.Sprintf("phase %d is not unlocked", phase),
		Status:  403,
	}
}

// NewInvalidPhaseError creates an INVALID_PHASE error for a phase outside the
// valid range. This is a client/programmer error, not a retryable condition.
func NewInvalidPhaseError(phase int) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidPhase,
		Message: fmt.Sprintf("phase must be between 1 and 5, got %d", phase),
		Status:  400,
	}
}

// NewDuplicateAchievementError creates a DUPLICATE_ACHIEVEMENT error.
func NewDuplicateAchievementError(id string) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateAchievement,
		Message: fmt.Sprintf("achievement already earned: %s", id),
		Status:  400,
	}
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewConflictError creates a CONFLICT error for an optimistic-concurrency
// version mismatch on a user's progress record.
func NewConflictError(userID string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf("progress record for user %s was modified concurrently", userID),
		Status:  409,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}
