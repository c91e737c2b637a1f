package bowlerr

import (
	"errors"
	"fmt"
)

// BaseError provides a base for custom errors, allowing for wrapped errors.
type BaseError struct {
	Msg string
	Err error
}

func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}

	return e.Msg
}

func (e *BaseError) Unwrap() error {
	return e.Err
}

// ValidationError reports bad or missing input detected before any I/O.
type ValidationError struct{ BaseError }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{BaseError{Msg: msg}}
}

// ProcessingError means the backend accepted the upload but could not create the app record.
type ProcessingError struct {
	BaseError
	StatusCode int
}

// NewProcessingError creates a ProcessingError for the given response status.
func NewProcessingError(statusCode int) *ProcessingError {
	return &ProcessingError{
		BaseError:  BaseError{Msg: "BOWL has an issue processing this app."},
		StatusCode: statusCode,
	}
}

// UploadError is any other non-2xx response of the upload endpoint.
type UploadError struct {
	BaseError
	StatusCode int
	Body       string
}

// NewUploadError creates an UploadError carrying the raw status and body.
func NewUploadError(statusCode int, body string) *UploadError {
	return &UploadError{
		BaseError:  BaseError{Msg: "Error when trying to upload file(s) to BOWL"},
		StatusCode: statusCode,
		Body:       body,
	}
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %d - %s", e.Msg, e.StatusCode, e.Body)
}

// APIClientError indicates the request never produced a response (DNS, TLS, connection reset).
type APIClientError struct{ BaseError }

// NewAPIClientError wraps a transport-level failure.
func NewAPIClientError(underlyingErr error) *APIClientError {
	return &APIClientError{BaseError{Msg: "API client error", Err: underlyingErr}}
}

// FileIOError indicates an I/O problem while reading or replacing a file.
type FileIOError struct{ BaseError }

// NewFileIOError wraps a filesystem failure with a short description.
func NewFileIOError(msg string, underlyingErr error) *FileIOError {
	return &FileIOError{BaseError{Msg: "I/O error during file operation: " + msg, Err: underlyingErr}}
}

// UserMessage renders err as the single line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		validationErr *ValidationError
		processingErr *ProcessingError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Msg
	case errors.As(err, &processingErr):
		return processingErr.Msg
	default:
		return err.Error()
	}
}
