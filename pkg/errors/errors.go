// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package errors defines the error taxonomy returned by the settings generator.
package errors

import (
	goerrors "errors"
	"fmt"
)

// Error types
const (
	// ErrInvalidArgument is returned when the generator is called with incomplete options
	ErrInvalidArgument = "invalid_argument"

	// ErrFileRead is returned when the source document cannot be read
	ErrFileRead = "file_read"

	// ErrParse is returned when the source document is not a JSON object
	ErrParse = "parse"

	// ErrFileWrite is returned when the merged document cannot be written
	ErrFileWrite = "file_write"

	// ErrInternal is returned when there is an internal error
	ErrInternal = "internal"
)

// Error represents an error in the application
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string, cause error) *Error {
	return NewError(ErrInvalidArgument, message, cause)
}

// NewFileReadError creates an error identifying the source path that could not be read
func NewFileReadError(path string, cause error) *Error {
	return NewError(ErrFileRead, fmt.Sprintf("failed to read %s", path), cause)
}

// NewParseError creates a new parse error
func NewParseError(message string, cause error) *Error {
	return NewError(ErrParse, message, cause)
}

// NewFileWriteError creates an error identifying the destination path that could not be written
func NewFileWriteError(path string, cause error) *Error {
	return NewError(ErrFileWrite, fmt.Sprintf("failed to write %s", path), cause)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *Error {
	return NewError(ErrInternal, message, cause)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return hasType(err, ErrInvalidArgument)
}

// IsFileRead checks if the error is a file read error
func IsFileRead(err error) bool {
	return hasType(err, ErrFileRead)
}

// IsParse checks if the error is a parse error
func IsParse(err error) bool {
	return hasType(err, ErrParse)
}

// IsFileWrite checks if the error is a file write error
func IsFileWrite(err error) bool {
	return hasType(err, ErrFileWrite)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return hasType(err, ErrInternal)
}

// hasType looks through wrapped errors for an *Error of the given type.
func hasType(err error, errorType string) bool {
	var e *Error
	return goerrors.As(err, &e) && e.Type == errorType
}
