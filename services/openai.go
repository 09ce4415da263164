package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIOptions configures the OpenAI-compatible completion client
type OpenAIOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIService talks to any OpenAI-compatible chat completions endpoint
type OpenAIService struct {
	client *resty.Client
	model  string
}

var _ CompletionClient = (*OpenAIService)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewOpenAIService(opts OpenAIOptions) (*OpenAIService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(opts.APIKey).
		SetTimeout(opts.Timeout).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	return &OpenAIService{
		client: client,
		model:  model,
	}, nil
}

// Complete sends an optional system message and one user message to
// /chat/completions and returns the first choice's content
func (o *OpenAIService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	var out chatCompletionResponse
	var apiErr chatErrorResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model:       model,
			Messages:    messages,
			Temperature: req.Temperature,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", &ServiceError{Provider: ProviderOpenAI, Op: "chat completion", Err: err}
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		return "", &ServiceError{
			Provider: ProviderOpenAI,
			Op:       "chat completion",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode(), msg),
		}
	}
	if len(out.Choices) == 0 {
		return "", &ServiceError{Provider: ProviderOpenAI, Op: "chat completion", Err: fmt.Errorf("response has no choices")}
	}
	// Only a null content is a failure; empty text is returned as is
	if out.Choices[0].Message.Content == nil {
		return "", &ServiceError{Provider: ProviderOpenAI, Op: "chat completion", Err: fmt.Errorf("response has no content")}
	}

	text := *out.Choices[0].Message.Content
	slog.Debug("Generated completion", "provider", ProviderOpenAI, "model", model, "response_length", len(text))
	return text, nil
}
