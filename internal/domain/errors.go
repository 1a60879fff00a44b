package domain

import (
	"errors"
)

// Predefined domain errors.
var (
	// ErrInvalidInput indicates a malformed or empty client request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotConfigured indicates a required credential is absent.
	ErrNotConfigured = errors.New("not configured")
)

// userError carries a message safe to show to the client while still
// matching its sentinel through errors.Is.
type userError struct {
	msg      string
	sentinel error
}

func (e *userError) Error() string { return e.msg }

func (e *userError) Unwrap() error { return e.sentinel }

// NewInvalidInput returns an invalid-input error with a client-facing message.
func NewInvalidInput(msg string) error {
	return &userError{msg: msg, sentinel: ErrInvalidInput}
}

// NewNotConfigured returns a missing-configuration error with a client-facing
// message.
func NewNotConfigured(msg string) error {
	return &userError{msg: msg, sentinel: ErrNotConfigured}
}

// IsInvalidInput reports whether err is an invalid-input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotConfigured reports whether err is a missing-configuration error.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// RetrievalKind discriminates context-retrieval failures.
type RetrievalKind string

const (
	// RetrievalNotConfigured: backend URL or access token missing.
	RetrievalNotConfigured RetrievalKind = "not_configured"
	// RetrievalTransport: the HTTP call itself failed (network, timeout).
	RetrievalTransport RetrievalKind = "transport"
	// RetrievalUpstreamStatus: non-success HTTP status from the backend.
	RetrievalUpstreamStatus RetrievalKind = "upstream_status"
	// RetrievalDecode: response body was not valid JSON.
	RetrievalDecode RetrievalKind = "decode"
	// RetrievalBackend: the backend returned an explicit error list.
	RetrievalBackend RetrievalKind = "backend"
)

// RetrievalError is a typed context-retrieval failure. The chat turn never
// aborts on one of these; the controller degrades to a diagnostic context
// string instead.
type RetrievalError struct {
	Kind    RetrievalKind
	Message string
	Status  int // HTTP status, set for RetrievalUpstreamStatus only
	Err     error
}

// Error returns the user-facing message. Callers that embed a cause put it
// in Message already; Err exists for unwrapping, not display.
func (e *RetrievalError) Error() string {
	return e.Message
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// NewRetrievalError creates a retrieval failure of the given kind.
func NewRetrievalError(kind RetrievalKind, message string, err error) *RetrievalError {
	return &RetrievalError{Kind: kind, Message: message, Err: err}
}

// RetrievalKindOf returns the kind of a retrieval error, or "" if err is not
// a *RetrievalError.
func RetrievalKindOf(err error) RetrievalKind {
	var re *RetrievalError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
