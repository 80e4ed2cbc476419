package botapi

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotSupported indicates an operation the adapter never forwards to Telegram.
	ErrNotSupported = errors.New("botapi: method is not supported")
	// ErrInvalidParams indicates request parameters that fail local validation.
	ErrInvalidParams = errors.New("botapi: invalid parameters")
)

// ErrorKind describes coarse-grained request failure classification.
type ErrorKind string

const (
	// ErrorKindRateLimited indicates flood-wait style throttling.
	ErrorKindRateLimited ErrorKind = "rate_limited"
	// ErrorKindTemporary indicates a transient failure that may succeed later.
	ErrorKindTemporary ErrorKind = "temporary"
	// ErrorKindPermanent indicates a failure caused by the request itself.
	ErrorKindPermanent ErrorKind = "permanent"
	// ErrorKindUnknown indicates an unclassified failure.
	ErrorKindUnknown ErrorKind = "unknown"
)

// RequestError is the single error type returned for failures reported by Telegram.
//
// Description follows Bot API wording, for example "Bad Request: CHAT_ADMIN_REQUIRED".
type RequestError struct {
	// Method is the Bot API method name that failed.
	Method string
	// Code is the Bot API style error code (400, 403, 429, ...).
	Code int
	// Description is the human-readable error text.
	Description string
	// Type is the raw MTProto error type when one is known.
	Type string
	// Kind classifies whether and how callers should retry.
	Kind ErrorKind
	// RetryAfter carries the flood-wait delay for rate-limited failures.
	RetryAfter time.Duration
	// MigrateToChatID is set when a basic group was upgraded to a supergroup.
	MigrateToChatID int64
	// Cause is the wrapped native error.
	Cause error
}

// Error returns one operator-readable failure summary.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString("botapi: ")
	if method := strings.TrimSpace(e.Method); method != "" {
		b.WriteString(method)
		b.WriteString(": ")
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, "[%d] ", e.Code)
	}
	if e.Description != "" {
		b.WriteString(e.Description)
	} else if e.Cause != nil {
		b.WriteString(e.Cause.Error())
	} else {
		b.WriteString("request failed")
	}
	if e.RetryAfter > 0 {
		fmt.Fprintf(&b, " (retry after %s)", e.RetryAfter)
	}

	return b.String()
}

// Unwrap returns the wrapped root cause.
func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Cause
}

// AsRequestError extracts one RequestError from wrapped error chains.
func AsRequestError(err error) (*RequestError, bool) {
	if err == nil {
		return nil, false
	}

	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr, true
	}

	return nil, false
}

// AsRateLimit extracts the retry delay from rate-limited request errors.
//
// It returns `(0, false)` if err is not classified as rate-limited.
func AsRateLimit(err error) (time.Duration, bool) {
	requestErr, ok := AsRequestError(err)
	if !ok || requestErr.Kind != ErrorKindRateLimited {
		return 0, false
	}

	return requestErr.RetryAfter, true
}

// BadRequest builds a 400 error raised by the adapter itself.
func BadRequest(method string, description string) *RequestError {
	return &RequestError{
		Method:      method,
		Code:        400,
		Description: "Bad Request: " + description,
		Kind:        ErrorKindPermanent,
	}
}

func invalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}
