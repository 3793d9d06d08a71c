package body

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind reports an encode request for a kind with no
	// registered codec. Decoding an unknown kind is not an error: the
	// body stays opaque and the envelope remains inspectable.
	ErrUnknownKind = errors.New("body: unknown kind")

	// ErrHashSizeMismatch reports a proof digest whose length disagrees
	// with its declared algorithm.
	ErrHashSizeMismatch = errors.New("body: hash size mismatch")
)

// Error is a kind-scoped body codec error. It carries the message kind
// whose codec rejected the input; envelope fields decoded alongside the
// body stay valid and inspectable.
//
// Message strings are for humans and may evolve. Branch with errors.Is
// on the wrapped sentinel, or errors.As on *Error for the kind.
type Error struct {
	Kind    uint8
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("body: kind %d: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind uint8, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind uint8, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// ErrorKind returns the message kind a body error is scoped to, or
// (0, false) if err is not a body codec error.
func ErrorKind(err error) (uint8, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
