package numeric

import (
	"errors"
	"fmt"
)

// Kind classifies why a numerical routine could not produce a result.
type Kind int

const (
	// OK means no failure.
	OK Kind = iota
	// InvalidInput means the call itself was malformed: too few samples,
	// non-positive subdivision count, wrong matrix shape, NaN input.
	InvalidInput
	// Degenerate means the input was well-formed but geometrically
	// degenerate: duplicate abscissas, zero pivot, zero-norm column.
	Degenerate
	// Unsupported means the answer exists but lies outside what the routine
	// computes, e.g. complex eigenvalues from the real-only 2x2 solver.
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case InvalidInput:
		return "invalid input"
	case Degenerate:
		return "degenerate"
	case Unsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinel errors, one per failure Kind.
var (
	// ErrInvalidInput indicates a malformed call shape.
	ErrInvalidInput = errors.New("numeric: invalid input")

	// ErrDegenerate indicates coincident points, a zero pivot or a zero-norm column.
	ErrDegenerate = errors.New("numeric: degenerate input")

	// ErrUnsupported indicates a result the routine does not compute.
	ErrUnsupported = errors.New("numeric: unsupported")
)

// Sentinel returns the sentinel error matching k, or nil for OK.
func (k Kind) Sentinel() error {
	switch k {
	case InvalidInput:
		return ErrInvalidInput
	case Degenerate:
		return ErrDegenerate
	case Unsupported:
		return ErrUnsupported
	default:
		return nil
	}
}

// Error wraps a failure with the operation that produced it.
type Error struct {
	Op   string
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind.Sentinel()
}

// Errorf builds an *Error for op with a formatted message.
func Errorf(op string, kind Kind, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind carried by err, or OK when err is nil.
// Errors that are not *Error but wrap a sentinel are classified too.
func KindOf(err error) Kind {
	if err == nil {
		return OK
	}
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return InvalidInput
	case errors.Is(err, ErrDegenerate):
		return Degenerate
	case errors.Is(err, ErrUnsupported):
		return Unsupported
	}
	return InvalidInput
}
