package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors abort a batch before any item is touched
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigParse  ErrorCode = "CONFIG_PARSE"
	ErrConfigValid  ErrorCode = "CONFIG_INVALID"
	ErrBaseDirUnset ErrorCode = "BASE_DIR_UNSET"

	// Library store errors
	ErrStore              ErrorCode = "STORE"
	ErrItemNotFound       ErrorCode = "ITEM_NOT_FOUND"
	ErrCollectionNotFound ErrorCode = "COLLECTION_NOT_FOUND"
	ErrLinkCreate         ErrorCode = "LINK_CREATE"
	ErrItemErase          ErrorCode = "ITEM_ERASE"
	ErrTitleSave          ErrorCode = "TITLE_SAVE"

	// Graph errors
	ErrCollectionCycle ErrorCode = "COLLECTION_CYCLE"
	ErrItemCycle       ErrorCode = "ITEM_CYCLE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileMove     ErrorCode = "FILE_MOVE"
	ErrFileRename   ErrorCode = "FILE_RENAME"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// AttachlinkError represents a structured error with code and details
type AttachlinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AttachlinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AttachlinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AttachlinkError) Is(target error) bool {
	var targetErr *AttachlinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AttachlinkError with the given code and message
func New(code ErrorCode, message string) *AttachlinkError {
	return &AttachlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AttachlinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AttachlinkError {
	return &AttachlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AttachlinkError
func Wrap(err error, code ErrorCode, message string) *AttachlinkError {
	if err == nil {
		return nil
	}
	return &AttachlinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AttachlinkError {
	if err == nil {
		return nil
	}
	return &AttachlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AttachlinkError) WithDetail(key string, value interface{}) *AttachlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *AttachlinkError) WithDetails(details map[string]interface{}) *AttachlinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var appErr *AttachlinkError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AttachlinkError
func GetErrorCode(err error) ErrorCode {
	var appErr *AttachlinkError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AttachlinkError
func GetErrorDetails(err error) map[string]interface{} {
	var appErr *AttachlinkError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// IsConfigError reports whether err belongs to the configuration category,
// which aborts a batch rather than being contained per item.
func IsConfigError(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigValid, ErrBaseDirUnset:
		return true
	}
	return false
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
