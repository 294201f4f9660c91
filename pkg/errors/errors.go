package errors

import "fmt"

// ErrorType classifies where in the pipeline an error occurred
type ErrorType string

const (
	// ErrorTypeConfig covers missing or malformed configuration, including
	// the credentials file. Fatal before anything starts.
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeSession covers browser session startup and navigation
	// failures. Fatal for the crawl.
	ErrorTypeSession ErrorType = "session"
	// ErrorTypeExtraction covers malformed per-item metadata. Local to one
	// gallery item.
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeControl covers a single "show more" locator strategy failing.
	// Local; the next strategy is tried.
	ErrorTypeControl ErrorType = "control"
	// ErrorTypeDownload covers network, status, and write failures for one
	// image. Local to one item.
	ErrorTypeDownload ErrorType = "download"
	// ErrorTypeInterrupted marks operator-initiated cancellation.
	ErrorTypeInterrupted ErrorType = "interrupted"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error carries the pipeline stage alongside the message. Code holds an
// HTTP status where one applies, zero otherwise.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given type.
func New(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given type that wraps an underlying error.
func Wrap(t ErrorType, err error, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsFatal reports whether an error type should abort the whole run.
// Only configuration and session-start errors propagate to the top; all
// per-item errors are contained and reported individually.
func IsFatal(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeConfig, ErrorTypeSession:
		return true
	case ErrorTypeExtraction, ErrorTypeControl, ErrorTypeDownload:
		return false
	default:
		return false
	}
}

// TypeOf returns the pipeline stage of err, or ErrorTypeUnknown for plain
// errors.
func TypeOf(err error) ErrorType {
	if e, ok := err.(*Error); ok {
		return e.Type
	}
	return ErrorTypeUnknown
}
