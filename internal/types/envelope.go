package types

// APIResponse is the uniform response envelope for all HTTP endpoints.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
