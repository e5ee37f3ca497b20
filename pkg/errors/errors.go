// Package errors provides custom error types for surveyor operations.
//
// The package defines typed errors for API calls, configuration,
// parsing, I/O, and database queries, along with sentinel errors for
// common failure conditions. All types implement the standard
// Unwrap/Is interfaces so callers can use errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
)

// New creates a new error with the given text.
var New = errors.New

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
var As = errors.As

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates a requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the caller supplied invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates an operation needs an API key that
	// was not configured.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrServiceUnavailable indicates a remote service is unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRateLimited indicates a remote service rejected the request
	// due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates an operation exceeded its deadline.
	ErrTimeout = errors.New("timeout")
)

// APIError represents an error from a remote HTTP API.
type APIError struct {
	Service    string // service name (e.g. "serpapi", "postcodes.io", "gemini")
	StatusCode int    // HTTP status code, if any
	Endpoint   string // endpoint that was called
	Message    string // human-readable description
	Err        error  // underlying error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Service, e.Message)
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is maps HTTP status codes onto sentinel errors so callers can test
// with errors.Is without inspecting status codes directly.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == 429
	case ErrServiceUnavailable:
		return e.StatusCode >= 500
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(service string, statusCode int, endpoint, message string, err error) *APIError {
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
		Err:        err,
	}
}

// ConfigError represents a configuration problem.
type ConfigError struct {
	Key     string // configuration key involved
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error (%s): %s", e.Key, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(key, message string, err error) *ConfigError {
	return &ConfigError{Key: key, Message: message, Err: err}
}

// ParseError represents a failure to parse structured data.
type ParseError struct {
	Format  string // data format (e.g. "json", "yaml", "csv")
	Source  string // where the data came from
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error (%s from %s): %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Format, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{Format: format, Source: source, Message: message, Err: err}
}

// IOError represents a filesystem read or write failure.
type IOError struct {
	Op   string // operation (e.g. "read", "write")
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an I/O error with operation and path context.
func WrapIO(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// QueryError represents a database query failure.
type QueryError struct {
	Table   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("query error (%s): %s", e.Table, e.Message)
	}
	return fmt.Sprintf("query error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError.
func NewQueryError(table, message string, err error) *QueryError {
	return &QueryError{Table: table, Message: message, Err: err}
}

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited reports whether err indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout reports whether err indicates a timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsServiceUnavailable reports whether err indicates an unavailable
// remote service.
func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}
