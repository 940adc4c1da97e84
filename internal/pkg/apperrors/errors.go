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
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrRegNoAlreadyExists   = errors.New("register number already exists")
	ErrStudentHasActiveRoom = errors.New("student has an active room allotment and cannot be deleted")
)

// Hostel and room errors
var (
	ErrHostelNotFound             = errors.New("hostel not found")
	ErrRoomNotFound               = errors.New("room not found")
	ErrRoomAlreadyExists          = errors.New("room with this number already exists in the hostel")
	ErrRoomFull                   = errors.New("room is already at full capacity")
	ErrRoomOccupied               = errors.New("room has active occupants")
	ErrHostelHasActiveAllotments  = errors.New("cannot delete hostel with active room allotments")
	ErrRoomHasActiveAllotments    = errors.New("cannot delete room with active allotments")
	ErrNoAvailableRooms           = errors.New("no available rooms to auto-allocate")
	ErrRoomUnderMaintenance       = errors.New("room is under maintenance")
)

// Allotment errors
var (
	ErrAllotmentNotFound       = errors.New("no active allotment found")
	ErrDuplicateActiveAllotment = errors.New("student already has an active room allotment")
)

// Application errors
var (
	ErrApplicationNotFound   = errors.New("allotment application not found")
	ErrPendingApplication    = errors.New("a pending application already exists for this user")
	ErrApplicationNotPending = errors.New("application has already been reviewed")
)

// Maintenance, fee and notification errors
var (
	ErrMaintenanceNotFound  = errors.New("maintenance request not found")
	ErrFeeNotFound          = errors.New("fee record not found")
	ErrFeeAlreadyPaid       = errors.New("fee has already been paid")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSettingNotFound      = errors.New("setting not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewConflictError creates a conflict error with a user-facing message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}
