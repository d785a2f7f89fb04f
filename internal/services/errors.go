package services

import (
	"errors"
	"net/http"
)

// Kind classifies a service failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindInvalidCredentials
	KindToken
	KindConflict
	KindStore
)

// Messages returned to clients.
const (
	MsgMissingFields      = "missing fields"
	MsgBadName            = "bad name"
	MsgBadEmail           = "bad email"
	MsgBadPassword        = "bad password"
	MsgMissingCredentials = "missing credentials"
	MsgInvalidCredentials = "invalid credentials"
	MsgInvalidToken       = "invalid or expired"
	MsgUserExists         = "user already exists"
	MsgStoreFailure       = "could not process request, try again later"
)

// Error is returned by AuthService operations. Message is safe to show to
// clients; Err holds the internal cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindToken:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindInvalidCredentials:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func validationError(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func authError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func tokenError(cause error) *Error {
	return &Error{Kind: KindToken, Message: MsgInvalidToken, Err: cause}
}

func storeError(err error) *Error {
	return &Error{Kind: KindStore, Message: MsgStoreFailure, Err: err}
}

// AsError extracts a service Error. Anything else is reported as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}
