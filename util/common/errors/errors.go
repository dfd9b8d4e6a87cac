package errors

import (
	"errors"
	"fmt"
)

// Error kinds shared across the upload pipeline
var (
	ErrMalformedMetadata        = errors.New("metadata is not valid JSON")
	ErrMissingRequiredField     = errors.New("required metadata field is missing")
	ErrUnrecognizedResourceType = errors.New("unrecognized resource type")
	ErrEmptyDirectory           = errors.New("no files to package")
)

// ValidationError represents an error that occurs while validating a
// resource descriptor. Kind is one of the metadata sentinels above so
// callers can tell malformed content, a missing field, and an unknown
// resource type apart with errors.Is.
type ValidationError struct {
	Path   string
	Field  string
	Detail string
	Kind   error
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("metadata validation failed for %s: %s", e.Path, e.Detail)
	}
	return fmt.Sprintf("metadata validation failed for %s: %v", e.Path, e.Kind)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// NewMalformedMetadataError creates a ValidationError for unparseable content
func NewMalformedMetadataError(path, detail string) error {
	return &ValidationError{
		Path:   path,
		Detail: detail,
		Kind:   ErrMalformedMetadata,
	}
}

// NewMissingFieldError creates a ValidationError for an absent required field
func NewMissingFieldError(path, field string) error {
	return &ValidationError{
		Path:   path,
		Field:  field,
		Detail: fmt.Sprintf("missing required field %q", field),
		Kind:   ErrMissingRequiredField,
	}
}

// NewUnknownTypeError creates a ValidationError for a resource type outside
// AGENT, MODEL, DATASET
func NewUnknownTypeError(path, value string) error {
	return &ValidationError{
		Path:   path,
		Field:  "type",
		Detail: fmt.Sprintf("invalid resource type %q, must be AGENT, MODEL, or DATASET", value),
		Kind:   ErrUnrecognizedResourceType,
	}
}

// FileError represents an error that occurs during file operations
type FileError struct {
	Path    string
	Op      string
	Wrapped error
}

func (e *FileError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s operation failed on %s: %v", e.Op, e.Path, e.Wrapped)
	}
	return fmt.Sprintf("%s operation failed on %s", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Wrapped
}

// NewFileError creates a new FileError
func NewFileError(path, op string, wrapped error) error {
	return &FileError{
		Path:    path,
		Op:      op,
		Wrapped: wrapped,
	}
}

// ArchiveError represents an error that occurs while packaging a project
// directory. Wrapped is ErrEmptyDirectory when nothing qualified for
// inclusion, otherwise the underlying IO error.
type ArchiveError struct {
	Dir     string
	Op      string
	Wrapped error
}

func (e *ArchiveError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("archive %s failed for %s: %v", e.Op, e.Dir, e.Wrapped)
	}
	return fmt.Sprintf("archive %s failed for %s", e.Op, e.Dir)
}

func (e *ArchiveError) Unwrap() error {
	return e.Wrapped
}

// NewArchiveError creates a new ArchiveError
func NewArchiveError(dir, op string, wrapped error) error {
	return &ArchiveError{
		Dir:     dir,
		Op:      op,
		Wrapped: wrapped,
	}
}

// RequestError represents a network-level failure: the request never
// produced an HTTP response (connection refused, DNS failure, timeout).
type RequestError struct {
	URL     string
	Wrapped error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Wrapped)
}

func (e *RequestError) Unwrap() error {
	return e.Wrapped
}

// NewRequestError creates a new RequestError
func NewRequestError(url string, wrapped error) error {
	return &RequestError{
		URL:     url,
		Wrapped: wrapped,
	}
}

// ServerError represents a rejection from the platform: a response arrived
// with a non-success status. Reason carries the server-provided message
// when one was present in the body.
type ServerError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *ServerError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("server rejected request to %s: status %d: %s", e.URL, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("server rejected request to %s: status %d", e.URL, e.StatusCode)
}

// NewServerError creates a new ServerError
func NewServerError(url string, statusCode int, reason string) error {
	return &ServerError{
		URL:        url,
		StatusCode: statusCode,
		Reason:     reason,
	}
}

// ResponseError represents a success-status response whose body is unusable:
// not JSON, or missing the resource or job identifier.
type ResponseError struct {
	URL    string
	Detail string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %s", e.URL, e.Detail)
}

// NewResponseError creates a new ResponseError
func NewResponseError(url, detail string) error {
	return &ResponseError{
		URL:    url,
		Detail: detail,
	}
}

// Stage names the upload pipeline stage an error belongs to: validating,
// packaging, or submitting. Errors outside the pipeline return "".
func Stage(err error) string {
	var (
		validation *ValidationError
		archive    *ArchiveError
		request    *RequestError
		server     *ServerError
		response   *ResponseError
	)
	switch {
	case As(err, &validation):
		return "validating"
	case As(err, &archive):
		return "packaging"
	case As(err, &request), As(err, &server), As(err, &response):
		return "submitting"
	}
	return ""
}

// Is reports whether target matches err.
// It enables errors.Is() to work with our custom error types.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// It enables errors.As() to work with our custom error types.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
