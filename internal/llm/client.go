package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	// DefaultEndpoint is the OpenRouter chat-completions endpoint.
	DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	// siteName is sent as the X-Title attribution header.
	siteName = "GapDebug"
)

// Client is an abstraction over chat-completion providers.
type Client interface {
	// QueryJSON sends a system+user prompt pair and returns the model's
	// response parsed as JSON. Markdown code fences around the JSON are
	// stripped before parsing.
	QueryJSON(ctx context.Context, model, systemPrompt, userPrompt string) (json.RawMessage, error)
	// QueryText sends a system+user prompt pair and returns the raw
	// response text unchanged.
	QueryText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// OpenRouterClient implements Client against the OpenRouter API.
// Each query issues exactly one outbound request; there are no retries,
// no caching and no request deduplication.
type OpenRouterClient struct {
	apiKey     string
	appURL     string
	endpoint   string
	httpClient *http.Client
}

// ClientOption customizes an OpenRouterClient.
type ClientOption func(*OpenRouterClient)

// WithEndpoint overrides the provider endpoint. Used in tests.
func WithEndpoint(url string) ClientOption {
	return func(c *OpenRouterClient) { c.endpoint = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *OpenRouterClient) { c.httpClient = hc }
}

// NewOpenRouterClient creates a client for the OpenRouter API. The appURL is
// sent as the HTTP-Referer header for request attribution. The apiKey is not
// validated here; a missing key fails at query time before any network call.
func NewOpenRouterClient(apiKey, appURL string, opts ...ClientOption) *OpenRouterClient {
	c := &OpenRouterClient{
		apiKey:     apiKey,
		appURL:     appURL,
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chatMessage is a single entry in the messages array.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat requests JSON-object constrained output.
type responseFormat struct {
	Type string `json:"type"`
}

// chatRequest is the outbound request body.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// chatResponse is the subset of the provider response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// upstreamErrorBody is the provider's error envelope.
type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// QueryJSON generates a JSON response from the given model.
func (c *OpenRouterClient) QueryJSON(ctx context.Context, model, systemPrompt, userPrompt string) (json.RawMessage, error) {
	content, err := c.complete(ctx, model, systemPrompt, userPrompt, true)
	if err != nil {
		return nil, err
	}

	cleaned := CleanJSONBlock(content)
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &MalformedJSONError{Raw: content, Cause: err}
	}
	return raw, nil
}

// QueryText generates a plain text response from the given model.
func (c *OpenRouterClient) QueryText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	return c.complete(ctx, model, systemPrompt, userPrompt, false)
}

// complete performs the single chat-completion round trip and extracts the
// assistant message content.
func (c *OpenRouterClient) complete(ctx context.Context, model, systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	if c.apiKey == "" {
		return "", &ConfigError{Missing: "OPENROUTER_API_KEY"}
	}

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	// Force JSON mode if requested (some models support it better than others)
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.appURL)
	req.Header.Set("X-Title", siteName)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody upstreamErrorBody
		// The error body is expected to be JSON with a nested message; if it
		// isn't, UpstreamError falls back to a generic status message.
		_ = json.Unmarshal(body, &errBody)
		return "", &UpstreamError{Status: resp.StatusCode, Message: errBody.Error.Message}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &EmptyResponseError{Model: model}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &EmptyResponseError{Model: model}
	}

	return parsed.Choices[0].Message.Content, nil
}
