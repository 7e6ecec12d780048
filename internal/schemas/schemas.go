// Package schemas embeds the JSON Schemas that constrain model output and
// validates documents against them.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.json
var schemaFiles embed.FS

// Schema names for the model-facing contracts.
const (
	ParsedResume    = "parsed_resume.json"
	JobRequirements = "job_requirements.json"
	Rewrite         = "rewrite.json"
)

// ValidationError reports a document that failed schema validation, with
// field paths.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation against %s failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports a schema that could not be loaded or parsed.
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Get returns the embedded schema document by name.
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{Name: name, Message: "not embedded", Cause: err}
	}
	return string(data), nil
}

// Validate checks a JSON document against a named embedded schema.
// Returns *ValidationError when the document does not conform and
// *SchemaLoadError when the schema itself is unusable.
func Validate(name, jsonContent string) error {
	schemaContent, err := Get(name)
	if err != nil {
		return err
	}
	return validateString(name, schemaContent, jsonContent)
}

// ValidateString checks a JSON document against schema content supplied
// directly, for callers carrying their own schema.
func ValidateString(schemaContent, jsonContent string) error {
	return validateString("(inline)", schemaContent, jsonContent)
}

func validateString(name, schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Name:    name,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
