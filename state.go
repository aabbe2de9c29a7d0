package veranda

// ValidationState is the validation outcome recorded for one field entry.
type ValidationState int

const (
	Unvalidated ValidationState = iota // No validation has run for the field yet.
	Invalid                            // Validation failed or an error was recorded.
	Valid                              // Validation succeeded.
	Skipped                            // Validation was deliberately skipped.
)

func (s ValidationState) String() string {
	switch s {
	case Unvalidated:
		return "unvalidated"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Entry is the per-key record of a binding outcome: the raw request value,
// the attempted (stringified) value, the ordered error list, and the
// validation state.
//
// Once an entry has been handed to a dictionary, mutate it only through
// dictionary operations; the dictionary keeps subtree bookkeeping (invalid
// counts, error totals) in sync as it applies changes.
type Entry struct {
	RawValue        any
	AttemptedValue  string
	Errors          ModelErrors
	ValidationState ValidationState
}

// clone deep-copies the entry record. RawValue is carried by reference; it
// is opaque caller data.
func (e *Entry) clone() *Entry {
	c := &Entry{
		RawValue:        e.RawValue,
		AttemptedValue:  e.AttemptedValue,
		ValidationState: e.ValidationState,
	}
	if len(e.Errors) > 0 {
		c.Errors = append(ModelErrors(nil), e.Errors...)
	}
	return c
}
