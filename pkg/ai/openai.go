package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	reviewDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "grading",
		Subsystem: "ai",
		Name:      "review_duration_seconds",
		Help:      "Duration of AI review requests",
	}, []string{"model", "kind"})

	reviewFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grading",
		Subsystem: "ai",
		Name:      "review_failures_total",
		Help:      "Number of AI review failures",
	}, []string{"model", "kind"})
)

// OpenAIConfig defines configuration options for the OpenAI reviewer.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	MaxAttempts int
	Logger      zerolog.Logger
}

// OpenAIReviewer implements Reviewer against the OpenAI chat completion API.
type OpenAIReviewer struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIReviewer builds a new reviewer using the provided configuration.
func NewOpenAIReviewer(cfg OpenAIConfig) (*OpenAIReviewer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1500
	}

	if cfg.Temperature == 0 {
		cfg.Temperature = 0.5
	}

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	tracer := otel.Tracer("github.com/talentgate/grading-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIReviewer{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// ReviewCode asks the model to review a code submission and parses the
// structured response.
func (r *OpenAIReviewer) ReviewCode(ctx context.Context, input CodeReviewInput) (CodeReview, error) {
	content, err := r.complete(ctx, "code_review", codeReviewPrompt(input))
	if err != nil {
		return CodeReview{}, err
	}

	review, err := parseCodeReview(content)
	if err != nil {
		reviewFailures.WithLabelValues(r.cfg.Model, "code_review").Inc()
		return CodeReview{}, err
	}

	return review, nil
}

// GradeQuiz asks the model to grade a quiz answer set and parses the
// structured response.
func (r *OpenAIReviewer) GradeQuiz(ctx context.Context, input QuizGradingInput) (QuizGrading, error) {
	content, err := r.complete(ctx, "quiz_grading", quizGradingPrompt(input))
	if err != nil {
		return QuizGrading{}, err
	}

	grading, err := parseQuizGrading(content)
	if err != nil {
		reviewFailures.WithLabelValues(r.cfg.Model, "quiz_grading").Inc()
		return QuizGrading{}, err
	}

	return grading, nil
}

// complete runs a chat completion with bounded retry. Transport failures are
// retried with exponential backoff; empty or non-text responses are permanent
// and surface the original error.
func (r *OpenAIReviewer) complete(parent context.Context, kind, prompt string) (string, error) {
	ctx, span := r.tracer.Start(parent, "openai."+kind, trace.WithAttributes(
		attribute.String("model", r.cfg.Model),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       r.cfg.Model,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	start := time.Now()

	var content string
	attempt := func() error {
		resp, err := r.client.CreateChatCompletion(ctx, request)
		if err != nil {
			r.logger.Warn().Err(err).Str("kind", kind).Msg("completion request failed")
			return err
		}

		if len(resp.Choices) == 0 {
			return backoff.Permanent(ErrUnexpectedResponseType)
		}

		content = strings.TrimSpace(resp.Choices[0].Message.Content)
		if content == "" {
			return backoff.Permanent(ErrUnexpectedResponseType)
		}

		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(r.cfg.MaxAttempts-1)), ctx)
	err := backoff.Retry(attempt, policy)
	reviewDuration.WithLabelValues(r.cfg.Model, kind).Observe(time.Since(start).Seconds())
	if err != nil {
		reviewFailures.WithLabelValues(r.cfg.Model, kind).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai %s: %w", kind, err)
	}

	return content, nil
}

func codeReviewPrompt(input CodeReviewInput) string {
	builder := strings.Builder{}
	builder.WriteString("Review this code submission for ")
	builder.WriteString(input.Role)
	builder.WriteString(" role. Consider:\n")
	builder.WriteString("1. Code quality\n")
	builder.WriteString("2. Best practices\n")
	builder.WriteString("3. Error handling\n")
	builder.WriteString("4. Documentation\n")
	builder.WriteString("5. Architecture decisions\n\n")
	builder.WriteString("Submission URL: ")
	builder.WriteString(input.SubmissionURL)
	builder.WriteString("\n\nFormat response as JSON with:\n")
	builder.WriteString(`{
  "overall_score": number (0-100),
  "categories": {
    "code_quality": number (0-100),
    "best_practices": number (0-100),
    "error_handling": number (0-100),
    "documentation": number (0-100),
    "architecture": number (0-100)
  },
  "feedback": {
    "strengths": string[],
    "improvements": string[],
    "critical_issues": string[]
  }
}`)
	return builder.String()
}

func quizGradingPrompt(input QuizGradingInput) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert technical interviewer tasked with grading a coding assessment. ")
	builder.WriteString("Please evaluate the following answers and provide detailed feedback for each question. ")
	builder.WriteString("Consider correctness, code quality, and problem-solving approach where applicable.\n\n")
	builder.WriteString("Test Questions and Answers:\n")

	for i, question := range input.Questions {
		answer := question.Answer
		if answer == "" {
			answer = "No answer provided"
		}
		builder.WriteString(fmt.Sprintf("\nQuestion %d: %s\nType: %s\nCandidate's Answer: %s\n", i+1, question.Question, question.Type, answer))
	}

	builder.WriteString("\nPlease provide:\n")
	builder.WriteString("1. A score for each question (0-100)\n")
	builder.WriteString("2. Specific feedback for each answer\n")
	builder.WriteString("3. Overall assessment and recommendations\n")
	builder.WriteString("4. Final score (0-100)\n\n")
	builder.WriteString("Format your response as a JSON object with the following structure:\n")
	builder.WriteString(`{
  "questionScores": [
    {
      "questionId": "string",
      "score": number,
      "feedback": "string"
    }
  ],
  "overallFeedback": "string",
  "finalScore": number,
  "recommendedAction": "proceed" | "reject"
}`)
	return builder.String()
}
