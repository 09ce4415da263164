package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt asks for five numbered interview questions.
// Inputs are embedded verbatim.
func (pb *PromptBuilder) BuildQuestionPrompt(domain, difficulty, interviewType string) string {
	return fmt.Sprintf(`Generate 5 %s level interview questions for a %s role
in the domain: %s.

Format:
1. Question
2. Question`, difficulty, interviewType, domain)
}

// BuildFeedbackPrompt asks for a free-text critique of one answer
func (pb *PromptBuilder) BuildFeedbackPrompt(question, userAnswer string) string {
	return fmt.Sprintf(`Question: %s
User Answer: %s

Give concise feedback:
- grammar
- clarity
- correctness`, question, userAnswer)
}

func (pb *PromptBuilder) BuildCorrectAnswerPrompt(question string) string {
	return fmt.Sprintf("Give a short correct answer for: %s", question)
}
