package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gapdebug/gapdebug/internal/store"
	"github.com/gapdebug/gapdebug/internal/types"
)

// fakeLLM is a canned-response llm.Client.
type fakeLLM struct {
	response json.RawMessage
	text     string
	err      error

	calls     int
	gotModel  string
	gotSystem string
	gotUser   string
}

func (f *fakeLLM) QueryJSON(_ context.Context, model, systemPrompt, userPrompt string) (json.RawMessage, error) {
	f.calls++
	f.gotModel = model
	f.gotSystem = systemPrompt
	f.gotUser = userPrompt
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeLLM) QueryText(_ context.Context, model, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.gotModel = model
	f.gotSystem = systemPrompt
	f.gotUser = userPrompt
	return f.text, f.err
}

// fakeExtractor returns canned text or a canned error.
type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(_ context.Context, _ io.Reader) (string, error) {
	return f.text, f.err
}

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()

	if cfg.Context == nil {
		liveCtx, err := store.NewContextStore(store.NewMemorySnapshots())
		require.NoError(t, err)
		cfg.Context = liveCtx
	}
	if cfg.Profiles == nil {
		cfg.Profiles = store.NewProfileCache(store.NewMemorySnapshots())
	}

	srv := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decodeEnvelope(t *testing.T, resp *http.Response) types.APIResponse {
	t.Helper()
	defer resp.Body.Close()

	var envelope types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	return resp
}

func uploadResume(t *testing.T, url string, contents []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, err = fw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url+"/api/parse-resume", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Config{Client: &fakeLLM{}, Extractor: &fakeExtractor{}})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, Config{Client: &fakeLLM{}, Extractor: &fakeExtractor{}})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/analyze-profile", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
