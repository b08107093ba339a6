package common

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP status codes used by the API.
const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusNoContent = 204

	StatusBadRequest      = 400
	StatusUnauthorized    = 401
	StatusForbidden       = 403
	StatusNotFound        = 404
	StatusConflict        = 409
	StatusPayloadTooLarge = 413
	StatusTooManyRequests = 429

	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
)

// Response messages.
const (
	MsgSuccess         = "Success"
	MsgCreated         = "Created successfully"
	MsgBadRequest      = "Bad request"
	MsgUnauthorized    = "Unauthorized request"
	MsgForbidden       = "Forbidden"
	MsgNotFound        = "Resource not found"
	MsgConflict        = "Resource already exists"
	MsgTooManyRequests = "Too many requests, please try again later"
	MsgInternalError   = "Something went wrong"
	MsgValidationError = "Received data is not valid"
)

// ErrorCode classifies an error independently of its HTTP status.
type ErrorCode struct {
	Code        string
	Category    string
	Description string
}

var (
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "System", Description: "Internal server error"}
	ErrCodeRateLimit      = ErrorCode{Code: "SYS_002", Category: "System", Description: "Rate limit reached"}

	ErrCodeAuth            = ErrorCode{Code: "AUTH", Category: "Authentication", Description: "Authentication error"}
	ErrCodeAuthToken       = ErrorCode{Code: "AUTH_001", Category: "Authentication", Description: "Token error"}
	ErrCodeAuthCredentials = ErrorCode{Code: "AUTH_002", Category: "Authentication", Description: "Credential error"}
	ErrCodeAuthOwnership   = ErrorCode{Code: "AUTH_003", Category: "Authorization", Description: "Actor is not the owner"}

	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "Validation", Description: "Invalid input"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "Validation", Description: "Invalid format"}
	ErrCodeValidationFile   = ErrorCode{Code: "VAL_003", Category: "Validation", Description: "Invalid file"}

	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "Database", Description: "Database error"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "Database", Description: "Connection error"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "Database", Description: "Query error"}
	ErrCodeDatabaseDuplicate  = ErrorCode{Code: "DB_003", Category: "Database", Description: "Duplicate key"}

	ErrCodeStorage = ErrorCode{Code: "STO_001", Category: "Storage", Description: "Object storage error"}

	ErrCodeBusinessState = ErrorCode{Code: "BIZ_001", Category: "Business", Description: "Invalid state"}
)

// Error is the error type carried unchanged from services to the HTTP boundary.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    any
}

// Error implements error.
func (e *Error) Error() string {
	return e.Message
}

// Is matches errors with the same code and message, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// Unwrap exposes a wrapped cause stored in Details.
func (e *Error) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}

// NewError builds an *Error.
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// BadRequest is a 400 with the given message.
func BadRequest(message string) error {
	return NewError(ErrCodeValidationInput, message, StatusBadRequest, nil)
}

// NotFound is a 404 with the given message.
func NotFound(message string) error {
	return NewError(ErrCodeDatabaseQuery, message, StatusNotFound, nil)
}

// Forbidden is the ownership failure, naming the refused action.
func Forbidden(action string) error {
	return NewError(ErrCodeAuthOwnership, fmt.Sprintf("You do not have permission to %s", action), StatusForbidden, nil)
}

// Conflict is a 409 with the given message.
func Conflict(message string) error {
	return NewError(ErrCodeDatabaseDuplicate, message, StatusConflict, nil)
}

// Internal wraps an unexpected failure.
func Internal(message string, cause error) error {
	return NewError(ErrCodeInternalServer, message, StatusInternalServerError, cause)
}

var (
	ErrInvalidCredentials  = NewError(ErrCodeAuthCredentials, "Invalid user credentials", StatusUnauthorized, nil)
	ErrTokenMissing        = NewError(ErrCodeAuthToken, MsgUnauthorized, StatusUnauthorized, nil)
	ErrTokenInvalid        = NewError(ErrCodeAuthToken, "Invalid access token", StatusUnauthorized, nil)
	ErrTokenExpired        = NewError(ErrCodeAuthToken, "Access token expired", StatusUnauthorized, nil)
	ErrRefreshTokenInvalid = NewError(ErrCodeAuthToken, "Invalid refresh token", StatusUnauthorized, nil)
	ErrRefreshTokenUsed    = NewError(ErrCodeAuthToken, "Refresh token is expired or used", StatusUnauthorized, nil)
	ErrWrongPassword       = NewError(ErrCodeAuthCredentials, "Invalid old password", StatusBadRequest, nil)

	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Invalid data format", StatusBadRequest, nil)
	ErrInvalidID     = NewError(ErrCodeValidationFormat, "Invalid id", StatusBadRequest, nil)

	ErrNotFound  = NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, nil)
	ErrDuplicate = NewError(ErrCodeDatabaseDuplicate, MsgConflict, StatusConflict, nil)

	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, "Database connection error", StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, "Database operation timed out", StatusServiceUnavailable, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, "Database query failed", StatusInternalServerError, nil)

	ErrUploadFailed = NewError(ErrCodeStorage, "Error while uploading file", StatusInternalServerError, nil)
)

// ConvertMongoError maps driver errors onto the API taxonomy.
// *Error values pass through unchanged.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return NewError(ErrCodeDatabaseDuplicate, MsgConflict, StatusConflict, err)
	case mongo.IsTimeout(err):
		return NewError(ErrMongoTimeout.(*Error).Code, ErrMongoTimeout.Error(), StatusServiceUnavailable, err)
	case mongo.IsNetworkError(err):
		return NewError(ErrCodeDatabaseConnection, ErrMongoConnection.Error(), StatusServiceUnavailable, err)
	}
	return NewError(ErrCodeDatabaseQuery, ErrMongoQuery.Error(), StatusInternalServerError, err)
}

// IsDuplicate reports whether err is a duplicate key failure, raw or converted.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code.Code == ErrCodeDatabaseDuplicate.Code
}

// StatusOf returns the HTTP status for err, 500 for unknown errors.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return StatusInternalServerError
}
