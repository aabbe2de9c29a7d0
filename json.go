package veranda

import (
	json "github.com/goccy/go-json"
)

// invalidInputMessage stands in for errors recorded without a message, so
// cause text never leaks into client payloads.
const invalidInputMessage = "The input was not valid."

// ErrorMap flattens every entry carrying errors into key -> messages,
// suitable for a validation-problem response body. The root key appears as
// "" when the whole-model entry recorded errors (including the budget
// marker).
func (d *ModelStateDictionary) ErrorMap() map[string][]string {
	out := make(map[string][]string)
	for _, n := range d.order {
		e := n.entry
		if len(e.Errors) == 0 {
			continue
		}
		msgs := make([]string, len(e.Errors))
		for i, me := range e.Errors {
			if me.Message != "" {
				msgs[i] = me.Message
			} else {
				msgs[i] = invalidInputMessage
			}
		}
		out[n.key] = msgs
	}
	return out
}

// MarshalJSON encodes the ErrorMap projection.
func (d *ModelStateDictionary) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ErrorMap())
}
