package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const interviewerSystemPrompt = "You are an expert technical interviewer."

// QuestionGenerator asks the completion service for interview questions
type QuestionGenerator struct {
	client  CompletionClient
	prompts *PromptBuilder
	model   string
}

func NewQuestionGenerator(client CompletionClient, model string) *QuestionGenerator {
	return &QuestionGenerator{
		client:  client,
		prompts: NewPromptBuilder(),
		model:   model,
	}
}

// Generate returns the questions or the completion failure. An empty slice
// with a nil error means the service answered with no usable lines.
func (g *QuestionGenerator) Generate(ctx context.Context, domain, difficulty, interviewType string) ([]string, error) {
	text, err := g.client.Complete(ctx, CompletionRequest{
		System:      interviewerSystemPrompt,
		User:        g.prompts.BuildQuestionPrompt(domain, difficulty, interviewType),
		Model:       g.model,
		Temperature: Temperature(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	return splitLines(text), nil
}

// GenerateQuestions is Generate with failures logged and collapsed into an
// empty list
func (g *QuestionGenerator) GenerateQuestions(ctx context.Context, domain, difficulty, interviewType string) []string {
	questions, err := g.Generate(ctx, domain, difficulty, interviewType)
	if err != nil {
		slog.Error("Question generation failed", "error", err, "domain", domain, "difficulty", difficulty, "interview_type", interviewType)
		return []string{}
	}
	slog.Info("Generated interview questions", "domain", domain, "count", len(questions))
	return questions
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
