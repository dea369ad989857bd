// Package errors provides structured error types for stills operations.
package errors

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindOpen represents failures to open or recognize a media container.
	KindOpen ErrorKind = iota
	// KindNoVideoStream represents a container without any video stream.
	KindNoVideoStream
	// KindDecode represents a packet or frame that failed to decode.
	KindDecode
	// KindUnsupportedFormat represents a source pixel format with no
	// conversion path to RGB24.
	KindUnsupportedFormat
	// KindClosed represents an operation on a closed session.
	KindClosed
	// KindIO represents I/O errors.
	KindIO
	// KindPath represents path-related errors.
	KindPath
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindNoFilesFound represents no suitable video files found.
	KindNoFilesFound
	// KindCancelled represents user-cancelled operations.
	KindCancelled
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindOpen:
		return "Open error"
	case KindNoVideoStream:
		return "No video stream"
	case KindDecode:
		return "Decode error"
	case KindUnsupportedFormat:
		return "Unsupported pixel format"
	case KindClosed:
		return "Session closed"
	case KindIO:
		return "I/O error"
	case KindPath:
		return "Path error"
	case KindConfig:
		return "Configuration error"
	case KindNoFilesFound:
		return "No files found"
	case KindCancelled:
		return "Operation cancelled"
	default:
		return "Unknown error"
	}
}

// CoreError is the main error type for stills operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewOpenError creates an error for a container that cannot be opened.
func NewOpenError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindOpen, Message: fmt.Sprintf("cannot open %s", path), Underlying: underlying}
}

// NewNoVideoStreamError creates an error for a container with no video stream.
func NewNoVideoStreamError(path string) *CoreError {
	return &CoreError{Kind: KindNoVideoStream, Message: fmt.Sprintf("no video stream in %s", path)}
}

// NewDecodeError creates an error for a packet or frame that failed to decode.
func NewDecodeError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindDecode, Message: message, Underlying: underlying}
}

// NewUnsupportedFormatError creates an error for a pixel format without a
// conversion path.
func NewUnsupportedFormatError(format string, underlying error) *CoreError {
	return &CoreError{Kind: KindUnsupportedFormat, Message: fmt.Sprintf("no RGB24 conversion for pixel format %s", format), Underlying: underlying}
}

// NewClosedError creates an error for operations on a closed session.
func NewClosedError(op string) *CoreError {
	return &CoreError{Kind: KindClosed, Message: fmt.Sprintf("%s called on closed session", op)}
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewPathError creates a new path-related error.
func NewPathError(message string) *CoreError {
	return &CoreError{Kind: KindPath, Message: message}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message}
}

// NewNoFilesFoundError creates an error for when no video files are found.
func NewNoFilesFoundError(dir string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no suitable video files found in %s", dir)}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError(underlying error) *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user", Underlying: underlying}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsOpen checks if the error is an open failure.
func IsOpen(err error) bool {
	return IsKind(err, KindOpen)
}

// IsNoVideoStream checks if the error reports a missing video stream.
func IsNoVideoStream(err error) bool {
	return IsKind(err, KindNoVideoStream)
}

// IsDecode checks if the error is a per-frame decode failure.
func IsDecode(err error) bool {
	return IsKind(err, KindDecode)
}

// IsUnsupportedFormat checks if the error reports an unconvertible pixel format.
func IsUnsupportedFormat(err error) bool {
	return IsKind(err, KindUnsupportedFormat)
}

// IsClosed checks if the error reports use of a closed session.
func IsClosed(err error) bool {
	return IsKind(err, KindClosed)
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}
