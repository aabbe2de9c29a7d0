package veranda

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced by dictionary operations. They mark contract
// violations by the calling binding engine, not bad user input; user input
// problems are recorded as model errors instead of being returned.
var (
	// ErrKeyExists is returned by Add when an entry is already present at
	// the exact key. Structural ancestor nodes do not trigger it.
	ErrKeyExists = errors.New("veranda: an entry already exists for the key")

	// ErrInvalidStateTransition is returned by MarkFieldValid and
	// MarkFieldSkipped when the entry is currently Invalid. A field that
	// recorded an error may never be downgraded.
	ErrInvalidStateTransition = errors.New("veranda: a field marked invalid cannot be re-marked valid or skipped")

	// ErrTooManyModelErrors is the marker recorded at the root key when the
	// error budget is exhausted. Detect it with errors.Is on the root
	// entry's last error.
	ErrTooManyModelErrors = errors.New("veranda: the maximum number of allowed model errors has been recorded")

	// ErrInvalidRange is returned by CopyTo when the destination offset or
	// capacity cannot hold the entries.
	ErrInvalidRange = errors.New("veranda: destination range is out of bounds")

	// ErrMaxAllowedErrorsRange is returned by SetMaxAllowedErrors for
	// budgets too small to hold the marker plus at least two real errors.
	ErrMaxAllowedErrorsRange = errors.New("veranda: max allowed errors must be at least 3")
)

// ModelError is a single recorded error for a field: a human-readable
// message, an underlying cause, or both. The cause is kept for diagnostics
// and is never rendered into client payloads.
type ModelError struct {
	Message string
	Err     error
}

// Error renders the message, falling back to the cause.
func (e ModelError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// Unwrap exposes the cause to errors.Is/As.
func (e ModelError) Unwrap() error { return e.Err }

// ModelErrors is the ordered error list of one entry. It implements error.
type ModelErrors []ModelError

// Error summarizes the first few errors.
func (errs ModelErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(errs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(errs[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}
