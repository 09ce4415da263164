package services

import (
	"context"
	"fmt"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// CompletionRequest is one system/user exchange with the completion service.
// System and Temperature are optional; an empty Model selects the client default.
type CompletionRequest struct {
	System      string
	User        string
	Model       string
	Temperature *float32
}

// CompletionClient sends a prompt to a language-model completion service
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ServiceError wraps any failure of the completion service. Callers do not
// distinguish between network, auth, quota or decoding failures.
type ServiceError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Temperature returns a pointer for CompletionRequest.Temperature
func Temperature(t float32) *float32 {
	return &t
}

// NewCompletionClient builds the client selected by cfg.Provider
func NewCompletionClient(cfg AIConfig) (CompletionClient, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIService(OpenAIOptions{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	case ProviderGemini:
		return NewGeminiService(GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// unavailableClient stands in when no provider could be configured; every
// call fails so the orchestrators fall back to their degraded responses
type unavailableClient struct {
	reason error
}

func (c unavailableClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return "", &ServiceError{Provider: "none", Op: "complete", Err: c.reason}
}
