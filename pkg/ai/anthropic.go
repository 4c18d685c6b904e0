package ai

import (
	"context"
	"fmt"
)

// AnthropicConfig placeholder for anthropic integration configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicReviewer is a stub implementation that can be expanded once the
// SDK is available.
type AnthropicReviewer struct{}

// NewAnthropicReviewer constructs a new stub reviewer.
func NewAnthropicReviewer(cfg AnthropicConfig) (*AnthropicReviewer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicReviewer{}, nil
}

// ReviewCode is not yet implemented for Anthropic models.
func (a *AnthropicReviewer) ReviewCode(ctx context.Context, input CodeReviewInput) (CodeReview, error) {
	return CodeReview{}, fmt.Errorf("anthropic reviewer not implemented")
}

// GradeQuiz is not yet implemented for Anthropic models.
func (a *AnthropicReviewer) GradeQuiz(ctx context.Context, input QuizGradingInput) (QuizGrading, error) {
	return QuizGrading{}, fmt.Errorf("anthropic reviewer not implemented")
}
