package completion

import (
	"errors"
	"fmt"
)

// Kind is a stable discriminant for pipeline errors. Callers branch on kind
// instead of matching message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindInvalid
)

// Error is the typed error returned by the completion pipeline
type Error struct {
	Kind Kind
	Op   string // failing operation, e.g. "tracker.MarkItemComplete"
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from an error chain, KindUnknown if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func notFound(op, msg string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg, Err: err}
}

func invalid(op, msg string) *Error {
	return &Error{Kind: KindInvalid, Op: op, Msg: msg}
}

func internal(op, msg string, err error) *Error {
	return &Error{Kind: KindUnknown, Op: op, Msg: msg, Err: err}
}
