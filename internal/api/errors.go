package api

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a backend failure. The kind is set at the point the
// failure is constructed, never inferred later from message text.
type Kind int

const (
	// KindUnknown is anything the transport could not categorize.
	KindUnknown Kind = iota
	// KindNetwork means no HTTP response was obtained at all.
	KindNetwork
	// KindHTTP is a non-2xx response other than an auth rejection.
	KindHTTP
	// KindAuth is a 401/403 response or a locally expired token.
	KindAuth
	// KindValidation means the response arrived but its body could not
	// be decoded into the expected shape.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the structured failure returned by every client method.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for network-level failures
	Message string // server-provided detail or a synthesized description
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("backend request failed (%s, HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend request failed (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify returns the kind of err. Structured *Error values report their
// own kind; for foreign errors the historical substring heuristic is kept
// as a fallback so that errors crossing package boundaries untyped still
// land in a sensible bucket.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "Authentication"):
		return KindAuth
	case strings.Contains(msg, "Failed to fetch"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "Network request failed"):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	return Classify(err) == KindAuth
}

// IsNetwork reports whether err is a network-level failure.
func IsNetwork(err error) bool {
	return Classify(err) == KindNetwork
}
