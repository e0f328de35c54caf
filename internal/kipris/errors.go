package kipris

import (
	"errors"
	"fmt"
)

// Kind classifies a client failure so callers can map it to a stable
// user-facing message without inspecting error strings.
type Kind int

const (
	// KindValidation marks bad caller input, rejected before any network I/O.
	KindValidation Kind = iota
	// KindAuth marks a missing or upstream-rejected API key.
	KindAuth
	// KindNotFound marks an upstream response with zero matching records.
	KindNotFound
	// KindUpstream marks a non-2xx response or transport failure.
	KindUpstream
	// KindParse marks a response body that does not decode into the expected shape.
	KindParse
	// KindTimeout marks a call that exceeded its deadline.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindParse:
		return "parse"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the client.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("kipris: %s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("kipris: %s: %s", e.Op, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("kipris: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("kipris: %s: %s error", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or KindUpstream when err did not
// originate in this package.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUpstream
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func newError(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}
