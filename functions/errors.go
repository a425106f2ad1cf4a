package functions

import "fmt"

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	// ArgumentError is returned when an argument is not a value kind the
	// function accepts, or the argument count is wrong.
	ArgumentError ErrorKind = iota
	// RuntimeError is returned when a value cannot be coerced to a number,
	// or when a custom function fails.
	RuntimeError
)

func (k ErrorKind) String() string {
	switch k {
	case ArgumentError:
		return "ArgumentError"
	case RuntimeError:
		return "RuntimeError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseErrorKind is the inverse of ErrorKind.String.
// Unknown values map to RuntimeError.
func ParseErrorKind(s string) ErrorKind {
	if s == ArgumentError.String() {
		return ArgumentError
	}
	return RuntimeError
}

// Error is the error returned from a failing function call.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func argumentError(format string, args ...any) error {
	return &Error{Kind: ArgumentError, Message: fmt.Sprintf(format, args...)}
}

func runtimeError(format string, args ...any) error {
	return &Error{Kind: RuntimeError, Message: fmt.Sprintf(format, args...)}
}
