package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"
)

const (
	ModelName = "gemini-2.5-flash"
)

// GeminiOptions configures the Gemini completion client
type GeminiOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeminiService sends completions to the Gemini API
type GeminiService struct {
	genaiClient *genai.Client
	model       string
}

var _ CompletionClient = (*GeminiService)(nil)

func NewGeminiService(opts GeminiOptions) (*GeminiService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	genaiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL: opts.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = ModelName
	}

	return &GeminiService{
		genaiClient: genaiClient,
		model:       model,
	}, nil
}

// Complete generates text for a single user prompt, with the optional system
// message passed as the system instruction
func (g *GeminiService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	config := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	result, err := g.genaiClient.Models.GenerateContent(
		ctx,
		model,
		genai.Text(req.User),
		config,
	)
	if err != nil {
		return "", &ServiceError{Provider: ProviderGemini, Op: "generate content", Err: err}
	}
	// Only a missing content block is a failure; empty text is returned as is
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", &ServiceError{Provider: ProviderGemini, Op: "generate content", Err: fmt.Errorf("no content in response")}
	}

	text := result.Text()
	slog.Debug("Generated completion", "provider", ProviderGemini, "model", model, "response_length", len(text))
	return text, nil
}
