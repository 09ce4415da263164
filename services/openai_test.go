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
)

func newTestOpenAIService(t *testing.T, handler http.HandlerFunc) *OpenAIService {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	svc, err := NewOpenAIService(OpenAIOptions{APIKey: "sk-test", BaseURL: ts.URL + "/v1/"})
	require.NoError(t, err)
	return svc
}

func TestOpenAIService_Complete_Success(t *testing.T) {
	var body map[string]any
	svc := newTestOpenAIService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"1. What is Go?"}}]}`)
	})

	out, err := svc.Complete(context.Background(), CompletionRequest{
		System:      "You are an expert technical interviewer.",
		User:        "Generate questions",
		Temperature: Temperature(0.7),
	})
	require.NoError(t, err)
	assert.Equal(t, "1. What is Go?", out)

	assert.Equal(t, defaultOpenAIModel, body["model"])
	assert.InDelta(t, 0.7, body["temperature"], 0.0001)

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, map[string]any{"role": "system", "content": "You are an expert technical interviewer."}, messages[0])
	assert.Equal(t, map[string]any{"role": "user", "content": "Generate questions"}, messages[1])
}

func TestOpenAIService_Complete_UserOnlyDefaultTemperature(t *testing.T) {
	var body map[string]any
	svc := newTestOpenAIService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Paris"}}]}`)
	})

	out, err := svc.Complete(context.Background(), CompletionRequest{User: "Capital of France?", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "Paris", out)

	assert.Equal(t, "gpt-4o", body["model"])
	_, hasTemperature := body["temperature"]
	assert.False(t, hasTemperature)

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, map[string]any{"role": "user", "content": "Capital of France?"}, messages[0])
}

func TestOpenAIService_Complete_Non2xx(t *testing.T) {
	svc := newTestOpenAIService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Rate limit reached","type":"requests"}}`)
	})

	_, err := svc.Complete(context.Background(), CompletionRequest{User: "hi"})
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ProviderOpenAI, svcErr.Provider)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "Rate limit reached")
}

func TestOpenAIService_Complete_NoChoices(t *testing.T) {
	svc := newTestOpenAIService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	})

	_, err := svc.Complete(context.Background(), CompletionRequest{User: "hi"})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
}

func TestOpenAIService_Complete_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	svc, err := NewOpenAIService(OpenAIOptions{APIKey: "sk-test", BaseURL: url})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), CompletionRequest{User: "hi"})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
}

func TestOpenAIService_Complete_EmptyAndNullContent(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"empty text is a completion", `{"choices":[{"message":{"role":"assistant","content":""}}]}`, "", false},
		{"null content fails", `{"choices":[{"message":{"role":"assistant","content":null}}]}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestOpenAIService(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			})

			out, err := svc.Complete(context.Background(), CompletionRequest{User: "hi"})
			if tt.wantErr {
				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
