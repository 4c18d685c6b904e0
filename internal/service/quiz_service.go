package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentgate/grading-api/internal/dto"
	"github.com/talentgate/grading-api/internal/models"
	"github.com/talentgate/grading-api/internal/observability"
	"github.com/talentgate/grading-api/internal/repository"
	"github.com/talentgate/grading-api/pkg/ai"
)

// ErrSkillTestNotFound indicates the referenced test definition does not exist.
var ErrSkillTestNotFound = errors.New("skill test not found")

// QuizService exposes the quiz-based assessment flow.
type QuizService interface {
	GetTest(ctx context.Context, id string) (dto.SkillTestResponse, error)
	Submit(ctx context.Context, payload dto.QuizSubmitRequest) (dto.QuizSubmitResponse, error)
}

type quizService struct {
	tests     repository.SkillTestRepository
	reviewer  ai.Reviewer
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewQuizService constructs the quiz grading service.
func NewQuizService(testRepo repository.SkillTestRepository, reviewer ai.Reviewer, validate *validator.Validate, logger zerolog.Logger) QuizService {
	return &quizService{
		tests:     testRepo,
		reviewer:  reviewer,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "quiz_service").Logger(),
	}
}

// GetTest returns the candidate-facing view of a test definition.
func (s *quizService) GetTest(ctx context.Context, id string) (dto.SkillTestResponse, error) {
	test, err := s.tests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SkillTestResponse{}, ErrSkillTestNotFound
		}
		return dto.SkillTestResponse{}, err
	}
	return dto.NewSkillTestResponse(test), nil
}

// Submit grades the candidate's answer set with the AI reviewer and persists
// the outcome. Passing is decided against the test's own passing score, not
// the webhook flow's fixed threshold.
func (s *quizService) Submit(ctx context.Context, payload dto.QuizSubmitRequest) (dto.QuizSubmitResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizSubmitResponse{}, err
	}

	test, err := s.tests.GetByID(ctx, payload.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmitResponse{}, ErrSkillTestNotFound
		}
		return dto.QuizSubmitResponse{}, err
	}

	// Candidate answers are free text; strip any HTML before they reach
	// the grading prompt or the database.
	answers := make(map[string]string, len(payload.Answers))
	for id, answer := range payload.Answers {
		answers[id] = strings.TrimSpace(s.sanitizer.Sanitize(answer))
	}

	questions := make([]ai.QuizQuestion, 0, len(test.Questions))
	for _, question := range test.Questions {
		questions = append(questions, ai.QuizQuestion{
			ID:       question.ID,
			Type:     question.Type,
			Question: question.Question,
			Answer:   answers[question.ID],
		})
	}

	grading, err := s.reviewer.GradeQuiz(ctx, ai.QuizGradingInput{Questions: questions})
	if err != nil {
		return dto.QuizSubmitResponse{}, err
	}

	passed := grading.FinalScore >= test.PassingScore
	status := models.TestSubmissionStatusFailed
	if passed {
		status = models.TestSubmissionStatusPassed
	}

	now := time.Now().UTC()
	score := grading.FinalScore
	submission := models.TestSubmission{
		TestID:      test.ID,
		Status:      status,
		Answers:     answers,
		Score:       &score,
		AIFeedback:  newQuizGradingModel(grading),
		CompletedAt: &now,
	}

	if err := s.tests.CreateSubmission(ctx, &submission); err != nil {
		return dto.QuizSubmitResponse{}, err
	}

	observability.QuizSubmissionsGraded().WithLabelValues(status).Inc()

	s.logger.Info().
		Str("test_id", test.ID).
		Str("submission_id", submission.ID).
		Int("score", grading.FinalScore).
		Bool("passed", passed).
		Msg("quiz submission graded")

	return dto.QuizSubmitResponse{
		Score:    grading.FinalScore,
		Feedback: grading.OverallFeedback,
		Passed:   passed,
	}, nil
}

func newQuizGradingModel(grading ai.QuizGrading) *models.QuizGrading {
	scores := make([]models.QuestionScore, 0, len(grading.QuestionScores))
	for _, score := range grading.QuestionScores {
		scores = append(scores, models.QuestionScore{
			QuestionID: score.QuestionID,
			Score:      score.Score,
			Feedback:   score.Feedback,
		})
	}

	return &models.QuizGrading{
		QuestionScores:    scores,
		OverallFeedback:   grading.OverallFeedback,
		FinalScore:        grading.FinalScore,
		RecommendedAction: grading.RecommendedAction,
	}
}
