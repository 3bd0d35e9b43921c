package errors

import (
	"net/http"

	"coursehub/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. User-facing messages are in Uzbek, matching the
// platform's frontend locale.
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Foydalanuvchi topilmadi",
		"",
	)

	ErrDuplicatePhone = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_PHONE",
		"Bu telefon raqam allaqachon ro'yxatdan o'tgan",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Foydalanuvchi yaratishda xatolik yuz berdi",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Foydalanuvchi ma'lumotlarini yangilashda xatolik yuz berdi",
		"",
	)

	// Authentication-related errors. The invalid-credentials message must not
	// reveal whether the identifier or the PIN was wrong.
	ErrInvalidPin = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_PIN",
		"Telefon raqam yoki PIN kod noto'g'ri",
		"",
	)

	// ErrLoginUserNotFound marks a login lookup miss. It keeps the not-found
	// code for callers but shares the user-facing text with ErrInvalidPin.
	ErrLoginUserNotFound = NewBaseError(
		http.StatusUnauthorized,
		"USER_NOT_FOUND",
		"Telefon raqam yoki PIN kod noto'g'ri",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Avtorizatsiyadan o'tilmagan",
		"",
	)

	ErrPinHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PIN_HASH_FAILED",
		"PIN kodni qayta ishlashda xatolik yuz berdi",
		"",
	)

	ErrInvalidPinFormat = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PIN_FORMAT",
		"PIN kod 4 xonali raqam bo'lishi kerak",
		"",
	)

	// Status-related errors
	ErrInvalidStatusTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_STATUS_TRANSITION",
		"O'chirilgan foydalanuvchi holatini o'zgartirib bo'lmaydi",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Kiritilgan ma'lumotlar noto'g'ri",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Kutilmagan xatolik yuz berdi",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Sizda bu amal uchun ruxsat yo'q",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Ma'lumot topilmadi",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Ma'lumotlar bazasida xatolik yuz berdi"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
