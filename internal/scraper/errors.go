package scraper

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. The HTTP layer maps each kind to a
// status code; the core only decides the kind.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindBlocked    Kind = "blocked"
	KindTimeout    Kind = "timeout"
	KindNetwork    Kind = "network"
	KindParse      Kind = "parse"
)

// Error is the single error type crossing the core boundary.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func validationErr(op string, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the kind from any error produced by this package.
// Unrecognized errors report as network faults, the most conservative
// retry-safe classification.
func KindOf(err error) Kind {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Kind
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return KindNetwork
}
