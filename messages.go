package veranda

import (
	"errors"
	"fmt"
	"strconv"
)

// Metadata supplies per-field display text for the failure-based error
// operations. Implementations must resolve the templates on every call; the
// dictionary never caches the resulting messages.
type Metadata interface {
	// DisplayName is the human-readable field name.
	DisplayName() string
	// AttemptedValueIsInvalid renders the message for a conversion failure
	// whose attempted value is known.
	AttemptedValueIsInvalid(attemptedValue string) string
	// UnknownValueIsInvalid renders the message for a conversion failure
	// without a usable attempted value.
	UnknownValueIsInvalid() string
}

// ConversionError reports that a raw request value could not be converted
// to the target field type. Binding code records it through AddModelFailure
// so the user sees a templated message instead of the raw cause.
type ConversionError struct {
	Value  string // the offending input
	Target string // target type name
	Err    error  // underlying conversion failure, if any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("veranda: cannot convert %q to %s", e.Value, e.Target)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// errorKind is the tagged dispatch over cause types used for message
// synthesis. Only conversion failures get user-facing text.
type errorKind int

const (
	kindGeneric errorKind = iota
	kindConversion
)

func kindOf(err error) errorKind {
	var conv *ConversionError
	if errors.As(err, &conv) {
		return kindConversion
	}
	var num *strconv.NumError
	if errors.As(err, &num) {
		return kindConversion
	}
	return kindGeneric
}

// deriveMessage synthesizes the user-facing message for a binding failure.
// Non-conversion causes yield no text; the cause itself stays on the
// recorded ModelError for diagnostics.
func deriveMessage(cause error, meta Metadata, attempted string) string {
	if meta == nil || kindOf(cause) != kindConversion {
		return ""
	}
	if attempted != "" {
		return meta.AttemptedValueIsInvalid(attempted)
	}
	return meta.UnknownValueIsInvalid()
}
