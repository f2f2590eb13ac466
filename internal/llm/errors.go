package llm

import "fmt"

// ConfigError indicates a missing provider credential or setting.
// It is returned before any network call is attempted.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing %s in environment variables", e.Missing)
}

// UpstreamError represents a non-2xx response from the model provider.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API Error: %d", e.Status)
}

// EmptyResponseError indicates the provider returned a 2xx response with no
// message content.
type EmptyResponseError struct {
	Model string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("no content received from AI model %s", e.Model)
}

// MalformedJSONError indicates the model returned content that could not be
// parsed as JSON. Raw retains the original content for diagnostics.
type MalformedJSONError struct {
	Raw   string
	Cause error
}

func (e *MalformedJSONError) Error() string {
	return "failed to parse AI response as JSON"
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}
