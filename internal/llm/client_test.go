package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// newTestClient returns a client pointed at a stub provider.
func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenRouterClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenRouterClient("test-key", "http://localhost:3000", WithEndpoint(srv.URL))
}

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestQueryJSON_PlainObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header = %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "http://localhost:3000" {
			t.Errorf("HTTP-Referer header = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %+v", req.ResponseFormat)
		}

		w.Write([]byte(completionBody(`{"persona": "student", "skills": ["Go"]}`)))
	})

	raw, err := client.QueryJSON(context.Background(), "test/model", "system", "user")
	if err != nil {
		t.Fatalf("QueryJSON() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("result not valid JSON: %v", err)
	}
	if parsed["persona"] != "student" {
		t.Errorf("persona = %v", parsed["persona"])
	}
}

func TestQueryJSON_FencedMatchesUnwrapped(t *testing.T) {
	payload := `{"skillGaps": ["Docker"]}`

	for _, content := range []string{payload, "```json\n" + payload + "\n```"} {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(completionBody(content)))
		})

		raw, err := client.QueryJSON(context.Background(), "test/model", "s", "u")
		if err != nil {
			t.Fatalf("QueryJSON(%q) error = %v", content, err)
		}
		if string(raw) != payload {
			t.Errorf("QueryJSON(%q) = %q, want %q", content, raw, payload)
		}
	}
}

func TestQueryJSON_UpstreamErrorWithMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Rate limit exceeded", "code": 429}}`))
	})

	_, err := client.QueryJSON(context.Background(), "test/model", "s", "u")

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d", upErr.Status)
	}
	if upErr.Error() != "Rate limit exceeded" {
		t.Errorf("Error() = %q", upErr.Error())
	}
}

func TestQueryJSON_UpstreamErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.QueryJSON(context.Background(), "test/model", "s", "u")

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upErr.Error() != "API Error: 502" {
		t.Errorf("Error() = %q, want generated status message", upErr.Error())
	}
}

func TestQueryJSON_EmptyContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices": []}`},
		{"empty content", completionBody("")},
		{"unparseable body", "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.QueryJSON(context.Background(), "test/model", "s", "u")

			var emptyErr *EmptyResponseError
			if !errors.As(err, &emptyErr) {
				t.Fatalf("expected EmptyResponseError, got %v", err)
			}
		})
	}
}

func TestQueryJSON_MalformedJSONRetainsRaw(t *testing.T) {
	content := "I think the answer is: {persona: student"
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(completionBody(content)))
	})

	_, err := client.QueryJSON(context.Background(), "test/model", "s", "u")

	var malformed *MalformedJSONError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedJSONError, got %v", err)
	}
	if malformed.Raw != content {
		t.Errorf("Raw = %q, want original content", malformed.Raw)
	}
	if malformed.Unwrap() == nil {
		t.Error("expected wrapped parse error")
	}
}

func TestQueryText_ReturnsRawContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ResponseFormat != nil {
			t.Errorf("expected no response_format, got %+v", req.ResponseFormat)
		}
		w.Write([]byte(completionBody("```json not stripped in text mode```")))
	})

	text, err := client.QueryText(context.Background(), "test/model", "s", "u")
	if err != nil {
		t.Fatalf("QueryText() error = %v", err)
	}
	if text != "```json not stripped in text mode```" {
		t.Errorf("QueryText() = %q", text)
	}
}

func TestMissingAPIKey_NoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(completionBody("{}")))
	}))
	defer srv.Close()

	client := NewOpenRouterClient("", "http://localhost:3000", WithEndpoint(srv.URL))
	_, err := client.QueryJSON(context.Background(), "test/model", "s", "u")

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cfgErr.Missing != "OPENROUTER_API_KEY" {
		t.Errorf("Missing = %q", cfgErr.Missing)
	}
	if calls.Load() != 0 {
		t.Errorf("expected zero network calls, got %d", calls.Load())
	}
}
