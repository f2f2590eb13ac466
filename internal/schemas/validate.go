// Package schemas provides JSON Schema validation for the model response
// contracts. Model output that parses as JSON but does not match the expected
// shape is rejected here instead of being forwarded to clients.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.json
var schemaFiles embed.FS

// Schema names for the supported response contracts.
const (
	ParsedResume    = "parsed_resume.json"
	ProfileAnalysis = "profile_analysis.json"
	Roadmap         = "roadmap.json"
	Pathway         = "pathway.json"
)

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("AI response did not match the %s contract:", strings.TrimSuffix(ve.Schema, ".json")))
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// Validate checks a JSON document against one of the embedded schemas.
// Returns a *ValidationError when the document does not conform.
func Validate(schemaName string, document []byte) error {
	schema, err := load(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", schemaName, err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: schemaName}
	for _, resultErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return ve
}

// load compiles and caches an embedded schema.
func load(schemaName string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, exists := compiled[schemaName]; exists {
		return schema, nil
	}

	data, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", schemaName, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", schemaName, err)
	}

	compiled[schemaName] = schema
	return schema, nil
}
