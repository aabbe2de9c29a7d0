// Package middleware holds the HTTP-boundary helpers for request-owned
// model state: typed context plumbing and JSON validation-problem
// responses. Router-specific adapters live outside the core module.
package middleware

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	veranda "github.com/karsden/veranda"
)

// ctxKeyModelState is a typed context key so unrelated values can never
// collide with the dictionary.
type ctxKeyModelState struct{}

// ContextWithModelState attaches the request's dictionary to the context.
func ContextWithModelState(ctx context.Context, d *veranda.ModelStateDictionary) context.Context {
	return context.WithValue(ctx, ctxKeyModelState{}, d)
}

// ModelStateFromContext retrieves the request's dictionary from context.
func ModelStateFromContext(ctx context.Context) (*veranda.ModelStateDictionary, bool) {
	d, ok := ctx.Value(ctxKeyModelState{}).(*veranda.ModelStateDictionary)
	return d, ok
}

// ErrorPayload shapes recorded model errors for JSON responses.
func ErrorPayload(d *veranda.ModelStateDictionary) map[string]any {
	return map[string]any{"errors": d.ErrorMap()}
}

// WriteValidationProblem writes the ErrorPayload of d as a 400 response.
func WriteValidationProblem(w http.ResponseWriter, d *veranda.ModelStateDictionary) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	return json.NewEncoder(w).Encode(ErrorPayload(d))
}
