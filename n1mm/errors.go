package n1mm

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. A *DecodeError matches exactly one of them.
var (
	ErrMalformed       = errors.New("malformed frame")
	ErrMissingField    = errors.New("missing field")
	ErrUnexpectedValue = errors.New("unexpected value")
)

// Reason classifies a DecodeError.
type Reason int

const (
	Malformed Reason = iota
	MissingField
	UnexpectedValue
)

func (r Reason) String() string {
	switch r {
	case Malformed:
		return "malformed"
	case MissingField:
		return "missing_field"
	case UnexpectedValue:
		return "unexpected_value"
	default:
		return "unknown"
	}
}

// DecodeError reports why a single datagram could not be turned into an
// event. It is always recoverable: the datagram is dropped and the caller
// moves on to the next one.
type DecodeError struct {
	Reason Reason
	Tag    string // root tag, empty when the XML itself was bad
	Field  string // offending child element, if any
	Value  string // offending text, for UnexpectedValue
	Err    error  // underlying cause, if any
}

func (e *DecodeError) Error() string {
	switch e.Reason {
	case Malformed:
		if e.Err != nil {
			return fmt.Sprintf("malformed frame: %v", e.Err)
		}
		return "malformed frame"
	case MissingField:
		return fmt.Sprintf("%s: missing field <%s>", e.Tag, e.Field)
	case UnexpectedValue:
		return fmt.Sprintf("%s: unexpected value %q in <%s>", e.Tag, e.Value, e.Field)
	default:
		return "decode error"
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Reason == Malformed
	case ErrMissingField:
		return e.Reason == MissingField
	case ErrUnexpectedValue:
		return e.Reason == UnexpectedValue
	}
	return false
}

func missing(tag, field string) error {
	return &DecodeError{Reason: MissingField, Tag: tag, Field: field}
}

func unexpected(tag, field, value string, cause error) error {
	return &DecodeError{Reason: UnexpectedValue, Tag: tag, Field: field, Value: value, Err: cause}
}
