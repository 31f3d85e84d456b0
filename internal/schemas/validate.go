// Package schemas provides JSON Schema validation for payloads exchanged with the disco server.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed embryo_list.schema.json
var embryoListSchema string

var (
	embryoListOnce     sync.Once
	embryoListCompiled *gojsonschema.Schema
	embryoListErr      error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateEmbryoList checks body against the structured result list schema.
// A body that is not JSON at all is reported as a *ValidationError on (root).
func ValidateEmbryoList(body []byte) error {
	embryoListOnce.Do(func() {
		embryoListCompiled, embryoListErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(embryoListSchema))
	})
	if embryoListErr != nil {
		return &SchemaLoadError{
			Path:    "embryo_list.schema.json",
			Message: "invalid embedded schema",
			Cause:   embryoListErr,
		}
	}

	result, err := embryoListCompiled.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// The document itself could not be parsed as JSON.
		return &ValidationError{
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
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
