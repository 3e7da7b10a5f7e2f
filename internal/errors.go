package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidDays      ErrorCode = "INVALID_APPLICABLE_DAYS"

	ErrCodeInvalidCredentials     ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAccountNotActivated    ErrorCode = "ACCOUNT_NOT_ACTIVATED"
	ErrCodeInvalidToken           ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken           ErrorCode = "MISSING_TOKEN"
	ErrCodeTokenExpired           ErrorCode = "TOKEN_EXPIRED"
	ErrCodeInvalidActivationToken ErrorCode = "INVALID_ACTIVATION_TOKEN"

	ErrCodeAccessDenied          ErrorCode = "ACCESS_DENIED"
	ErrCodeUserNotFound          ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmailTaken            ErrorCode = "EMAIL_TAKEN"
	ErrCodeManagerNotFound       ErrorCode = "MANAGER_NOT_FOUND"
	ErrCodeEstablishmentNotFound ErrorCode = "ESTABLISHMENT_NOT_FOUND"
	ErrCodeShiftNotFound         ErrorCode = "SHIFT_NOT_FOUND"
	ErrCodeTemplateNotFound      ErrorCode = "TEMPLATE_NOT_FOUND"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials  = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrAccountNotActivated = NewUnauthorizedError("account has not been activated", ErrCodeAccountNotActivated)
	ErrInvalidToken        = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrMissingToken        = NewUnauthorizedError("missing authorization token", ErrCodeMissingToken)
	ErrTokenExpired        = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
	// Activation link failures surface as 400, matching the password-setup flow.
	ErrInvalidActivationToken = NewValidationError("activation link is expired or invalid", ErrCodeInvalidActivationToken)

	ErrUserNotFound          = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrEstablishmentNotFound = NewNotFoundError("establishment not found", ErrCodeEstablishmentNotFound)
	ErrShiftNotFound         = NewNotFoundError("shift not found", ErrCodeShiftNotFound)
	ErrTemplateNotFound      = NewNotFoundError("shift template not found", ErrCodeTemplateNotFound)
	ErrEmailTaken            = NewConflictError("email is already registered", ErrCodeEmailTaken)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

// MarshalJSON keeps Cause out of the wire representation.
func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
