package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the backend answers 404.
	ErrNotFound = errors.New("food not found")
	// ErrValidation is returned when the backend rejects the payload (400/422).
	ErrValidation = errors.New("invalid food")
	// ErrUnavailable covers transport failures and timeouts.
	ErrUnavailable = errors.New("backend unreachable")
	// ErrRemote covers any other failed exchange.
	ErrRemote = errors.New("remote operation failed")
)

// RemoteError describes a failed call against the /foods resource.
type RemoteError struct {
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *RemoteError) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *RemoteError) Unwrap() error { return e.Err }

func kindForStatus(status int) error {
	switch {
	case status == 404:
		return ErrNotFound
	case status == 400 || status == 422:
		return ErrValidation
	case status == 502 || status == 503 || status == 504:
		return ErrUnavailable
	default:
		return ErrRemote
	}
}
