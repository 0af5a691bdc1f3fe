package contract

import "fmt"

// ErrorKind classifies why a transition was rejected. Every failure is fatal
// to the single interaction: the draft state is discarded and the previous
// snapshot stays in force. The human readable message is produced here but
// only crosses the boundary as a string.
type ErrorKind int

const (
	// Malformed, missing or out of range input
	KindValidation ErrorKind = iota + 1

	// Caller balance below the required amount
	KindInsufficientFunds

	// No such record, auction, gateway or vault
	KindNotFound

	// Wrong lifecycle state, e.g. gateway already leaving
	KindStateConflict

	// Broken internal assumption, e.g. tick height regression
	KindInvariantViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInsufficientFunds:
		return "insufficient funds"
	case KindNotFound:
		return "not found"
	case KindStateConflict:
		return "state conflict"
	case KindInvariantViolation:
		return "invariant violation"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind ErrorKind
	msg  string
}

func (self *Error) Error() string {
	return fmt.Sprintf("%s: %s", self.Kind, self.msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func ErrValidation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func ErrInsufficientFunds(format string, args ...interface{}) *Error {
	return newError(KindInsufficientFunds, format, args...)
}

func ErrNotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func ErrStateConflict(format string, args ...interface{}) *Error {
	return newError(KindStateConflict, format, args...)
}

func ErrInvariantViolation(format string, args ...interface{}) *Error {
	return newError(KindInvariantViolation, format, args...)
}

// KindOf returns the classification of an error produced by this package,
// 0 for anything else.
func KindOf(err error) ErrorKind {
	e, ok := err.(*Error)
	if !ok {
		return 0
	}
	return e.Kind
}
