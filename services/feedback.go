package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	evaluatorSystemPrompt  = "You are an interview evaluator."
	FeedbackFailureMessage = "Feedback generation failed."
)

// BatchPolicy decides what a feedback batch returns when a completion fails
type BatchPolicy string

const (
	// BatchAllOrNothing drops every result and returns one placeholder
	BatchAllOrNothing BatchPolicy = "all_or_nothing"
	// BatchPerPair records a placeholder for the failed pair and keeps going
	BatchPerPair BatchPolicy = "per_pair"
)

// ParseBatchPolicy falls back to BatchAllOrNothing for unknown values
func ParseBatchPolicy(s string) BatchPolicy {
	if BatchPolicy(strings.ToLower(strings.TrimSpace(s))) == BatchPerPair {
		return BatchPerPair
	}
	return BatchAllOrNothing
}

// FeedbackResult is the evaluation of one answered question
type FeedbackResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Feedback      string `json:"feedback"`
}

// ScoredFeedback is the response to a single submitted answer
type ScoredFeedback struct {
	Feedback      string `json:"feedback"`
	CorrectAnswer string `json:"correct_answer"`
	Score         int    `json:"score"`
}

// FeedbackGenerator critiques answers and fetches reference answers
type FeedbackGenerator struct {
	client  CompletionClient
	prompts *PromptBuilder
	model   string
	policy  BatchPolicy
}

func NewFeedbackGenerator(client CompletionClient, model string, policy BatchPolicy) *FeedbackGenerator {
	if policy == "" {
		policy = BatchAllOrNothing
	}
	return &FeedbackGenerator{
		client:  client,
		prompts: NewPromptBuilder(),
		model:   model,
		policy:  policy,
	}
}

// GenerateFeedback evaluates answers against questions pairwise, stopping at
// the shorter of the two slices. Pairs are processed one at a time in order.
func (g *FeedbackGenerator) GenerateFeedback(ctx context.Context, userAnswers, questions []string) []FeedbackResult {
	n := min(len(userAnswers), len(questions))
	if len(userAnswers) != len(questions) {
		slog.Warn("Feedback batch length mismatch, truncating", "answers", len(userAnswers), "questions", len(questions), "pairs", n)
	}

	results := make([]FeedbackResult, 0, n)
	for i := 0; i < n; i++ {
		result, err := g.evaluate(ctx, questions[i], userAnswers[i])
		if err != nil {
			if g.policy == BatchPerPair {
				slog.Error("Feedback generation failed for pair", "error", err, "index", i)
				results = append(results, FeedbackResult{
					Question:   questions[i],
					UserAnswer: userAnswers[i],
					Feedback:   FeedbackFailureMessage,
				})
				continue
			}
			slog.Error("Feedback generation failed", "error", err, "index", i, "pairs", n)
			return []FeedbackResult{{Feedback: FeedbackFailureMessage}}
		}
		results = append(results, result)
	}
	return results
}

// ScoreAnswer evaluates a single answer and scores it against the reference
// answer returned for it
func (g *FeedbackGenerator) ScoreAnswer(ctx context.Context, userAnswer, question string) ScoredFeedback {
	results := g.GenerateFeedback(ctx, []string{userAnswer}, []string{question})
	result := results[0]
	return ScoredFeedback{
		Feedback:      result.Feedback,
		CorrectAnswer: result.CorrectAnswer,
		Score:         CalculateReward(userAnswer, result.CorrectAnswer),
	}
}

func (g *FeedbackGenerator) evaluate(ctx context.Context, question, userAnswer string) (FeedbackResult, error) {
	feedback, err := g.client.Complete(ctx, CompletionRequest{
		System:      evaluatorSystemPrompt,
		User:        g.prompts.BuildFeedbackPrompt(question, userAnswer),
		Model:       g.model,
		Temperature: Temperature(0.6),
	})
	if err != nil {
		return FeedbackResult{}, fmt.Errorf("failed to generate feedback: %w", err)
	}

	correctAnswer, err := g.client.Complete(ctx, CompletionRequest{
		User:  g.prompts.BuildCorrectAnswerPrompt(question),
		Model: g.model,
	})
	if err != nil {
		return FeedbackResult{}, fmt.Errorf("failed to generate correct answer: %w", err)
	}

	return FeedbackResult{
		Question:      question,
		UserAnswer:    userAnswer,
		CorrectAnswer: strings.TrimSpace(correctAnswer),
		Feedback:      strings.TrimSpace(feedback),
	}, nil
}
