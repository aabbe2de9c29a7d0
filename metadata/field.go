// Package metadata supplies the default field-metadata collaborator used by
// the failure-based model error operations. Message templates resolve
// through the i18n translator on every call so locale switches take effect
// immediately.
package metadata

import (
	"github.com/karsden/veranda/i18n"
)

// Field describes one bound model field. It implements veranda.Metadata.
type Field struct {
	Name    string // binding name, e.g. "age"
	Display string // optional human-readable name; Name is used when empty
}

// DisplayName returns the human-readable field name.
func (f Field) DisplayName() string {
	if f.Display != "" {
		return f.Display
	}
	return f.Name
}

// AttemptedValueIsInvalid renders the conversion-failure message for a
// known attempted value.
func (f Field) AttemptedValueIsInvalid(attemptedValue string) string {
	return i18n.Message(i18n.CodeAttemptedValueInvalid, map[string]string{
		"value": attemptedValue,
		"field": f.DisplayName(),
	})
}

// UnknownValueIsInvalid renders the conversion-failure message used when no
// attempted value is known.
func (f Field) UnknownValueIsInvalid() string {
	return i18n.Message(i18n.CodeUnknownValueInvalid, map[string]string{
		"field": f.DisplayName(),
	})
}

// MissingBindRequired renders the message for a field that was required by
// binding but absent from the request.
func (f Field) MissingBindRequired() string {
	return i18n.Message(i18n.CodeMissingBindRequired, map[string]string{
		"field": f.DisplayName(),
	})
}
