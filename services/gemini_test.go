package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGeminiService(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	svc, err := NewGeminiService(GeminiOptions{APIKey: "gem-test", BaseURL: ts.URL + "/"})
	require.NoError(t, err)
	return svc
}

func TestNewGeminiService_RequiresKey(t *testing.T) {
	_, err := NewGeminiService(GeminiOptions{})
	assert.Error(t, err)
}

func TestGeminiService_Complete_Success(t *testing.T) {
	var path, apiKey string
	var body map[string]any
	svc := newTestGeminiService(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		apiKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Paris"}]}}]}`)
	})

	out, err := svc.Complete(context.Background(), CompletionRequest{
		System:      "You are an interview evaluator.",
		User:        "Capital of France?",
		Temperature: Temperature(0.6),
	})
	require.NoError(t, err)
	assert.Equal(t, "Paris", out)

	assert.Equal(t, "/v1beta/models/"+ModelName+":generateContent", path)
	assert.Equal(t, "gem-test", apiKey)

	system, ok := body["systemInstruction"].(map[string]any)
	require.True(t, ok, "system instruction missing: %v", body)
	assert.Equal(t, []any{map[string]any{"text": "You are an interview evaluator."}}, system["parts"])

	generation, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generation config missing: %v", body)
	assert.InDelta(t, 0.6, generation["temperature"], 0.0001)

	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
	assert.Equal(t, []any{map[string]any{"text": "Capital of France?"}}, contents[0].(map[string]any)["parts"])
}

func TestGeminiService_Complete_UserOnly(t *testing.T) {
	var path string
	var body map[string]any
	svc := newTestGeminiService(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Paris"}]}}]}`)
	})

	_, err := svc.Complete(context.Background(), CompletionRequest{User: "Capital of France?", Model: "gemini-2.5-pro"})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-2.5-pro:generateContent", path)
	_, hasSystem := body["systemInstruction"]
	assert.False(t, hasSystem)
	if generation, ok := body["generationConfig"].(map[string]any); ok {
		_, hasTemperature := generation["temperature"]
		assert.False(t, hasTemperature)
	}
}

func TestGeminiService_Complete_EmptyText(t *testing.T) {
	svc := newTestGeminiService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":""}]}}]}`)
	})

	out, err := svc.Complete(context.Background(), CompletionRequest{User: "hi"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGeminiService_Complete_NoCandidates(t *testing.T) {
	svc := newTestGeminiService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	_, err := svc.Complete(context.Background(), CompletionRequest{User: "hi"})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ProviderGemini, svcErr.Provider)
	assert.Contains(t, err.Error(), "no content")
}

func TestGeminiService_Complete_APIError(t *testing.T) {
	svc := newTestGeminiService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"code":429,"message":"Resource exhausted","status":"RESOURCE_EXHAUSTED"}}`)
	})

	_, err := svc.Complete(context.Background(), CompletionRequest{User: "hi"})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ProviderGemini, svcErr.Provider)

	var apiErr genai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Code)
}
