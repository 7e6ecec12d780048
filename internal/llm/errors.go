// Package llm provides the model-call capability the pipeline depends on:
// prompt in, schema-validated JSON out, behind a narrow interface so the
// rest of the system can run against deterministic stand-ins.
package llm

import "fmt"

// ModelUnavailableError reports a transport-level failure: network error,
// timeout, or an empty response from the provider.
type ModelUnavailableError struct {
	Message string
	Cause   error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model unavailable: %s", e.Message)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}

// SchemaViolationError reports model output that parsed as text but did
// not conform to the requested response schema (including output that is
// not JSON at all).
type SchemaViolationError struct {
	Schema string
	Cause  error
}

func (e *SchemaViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema violation against %s: %v", e.Schema, e.Cause)
	}
	return fmt.Sprintf("schema violation against %s", e.Schema)
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}
