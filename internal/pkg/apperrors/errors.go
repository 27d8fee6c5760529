package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrProfileNotFound       = errors.New("user profile not found")
	ErrProfileAlreadyExists  = errors.New("user already has a profile")
)

// Role errors
var (
	ErrRoleNotFound        = errors.New("role assignment not found")
	ErrRoleAlreadyAssigned = errors.New("role already assigned to user")
)

// Academy errors
var (
	ErrAcademyNotFound       = errors.New("academy not found")
	ErrMemberNotFound        = errors.New("user is not a member of this academy")
	ErrMemberAlreadyExists   = errors.New("user is already a member of this academy")
	ErrInvitationNotFound    = errors.New("invitation not found or already processed")
	ErrInvitationPending     = errors.New("an invitation is already pending for this user")
	ErrInviteeNotStudent     = errors.New("user must hold the STUDENT role to be invited")
	ErrOwnerRoleRequired     = errors.New("user must be an ACADEMY_OWNER to create an academy")
)

// Is returns whether target matches err or any of the errors in errList.
// It is a convenience around errors.Is for checks against several sentinels.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}
