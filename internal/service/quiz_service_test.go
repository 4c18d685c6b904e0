package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/talentgate/grading-api/internal/dto"
	"github.com/talentgate/grading-api/internal/models"
	"github.com/talentgate/grading-api/pkg/ai"
)

type memorySkillTestRepo struct {
	tests       map[string]models.SkillTest
	submissions []models.TestSubmission
}

func newMemorySkillTestRepo() *memorySkillTestRepo {
	return &memorySkillTestRepo{tests: make(map[string]models.SkillTest)}
}

func (m *memorySkillTestRepo) GetByID(_ context.Context, id string) (models.SkillTest, error) {
	test, ok := m.tests[id]
	if !ok {
		return models.SkillTest{}, gorm.ErrRecordNotFound
	}
	return test, nil
}

func (m *memorySkillTestRepo) CreateSubmission(_ context.Context, submission *models.TestSubmission) error {
	if submission.ID == "" {
		submission.ID = "test-sub-1"
	}
	m.submissions = append(m.submissions, *submission)
	return nil
}

func (m *memorySkillTestRepo) UpdateSubmission(_ context.Context, submission *models.TestSubmission) error {
	for i := range m.submissions {
		if m.submissions[i].ID == submission.ID {
			m.submissions[i] = *submission
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type quizStubReviewer struct {
	grading   ai.QuizGrading
	err       error
	lastInput ai.QuizGradingInput
}

func (s *quizStubReviewer) ReviewCode(_ context.Context, _ ai.CodeReviewInput) (ai.CodeReview, error) {
	return ai.CodeReview{}, errors.New("not used")
}

func (s *quizStubReviewer) GradeQuiz(_ context.Context, input ai.QuizGradingInput) (ai.QuizGrading, error) {
	s.lastInput = input
	if s.err != nil {
		return ai.QuizGrading{}, s.err
	}
	return s.grading, nil
}

func backendSkillTest() models.SkillTest {
	return models.SkillTest{
		ID:           "test-1",
		Title:        "Backend Fundamentals",
		Role:         models.RoleBackend,
		PassingScore: 75,
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionTypeFreeText, Question: "Explain idempotency."},
			{ID: "q2", Type: models.QuestionTypeCoding, Question: "Reverse a linked list."},
		},
		TimeLimitMinutes: 60,
	}
}

func TestQuizServiceSubmitPassesAgainstTestThreshold(t *testing.T) {
	repo := newMemorySkillTestRepo()
	repo.tests["test-1"] = backendSkillTest()

	reviewer := &quizStubReviewer{grading: ai.QuizGrading{
		QuestionScores:    []ai.QuestionScore{{QuestionID: "q1", Score: 80, Feedback: "solid"}, {QuestionID: "q2", Score: 70, Feedback: "works"}},
		OverallFeedback:   "Good grasp of the fundamentals.",
		FinalScore:        75,
		RecommendedAction: "proceed",
	}}

	svc := NewQuizService(repo, reviewer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	result, err := svc.Submit(context.Background(), dto.QuizSubmitRequest{
		TestID:  "test-1",
		Answers: map[string]string{"q1": "An operation safe to retry.", "q2": "iterate and flip pointers"},
	})
	require.NoError(t, err)
	require.True(t, result.Passed, "score equal to the passing score should pass")
	require.Equal(t, 75, result.Score)
	require.Equal(t, "Good grasp of the fundamentals.", result.Feedback)

	require.Len(t, repo.submissions, 1)
	stored := repo.submissions[0]
	require.Equal(t, models.TestSubmissionStatusPassed, stored.Status)
	require.NotNil(t, stored.Score)
	require.Equal(t, 75, *stored.Score)
	require.NotNil(t, stored.AIFeedback)
	require.Len(t, stored.AIFeedback.QuestionScores, 2)
	require.NotNil(t, stored.CompletedAt)
}

func TestQuizServiceSubmitFailsBelowThreshold(t *testing.T) {
	repo := newMemorySkillTestRepo()
	repo.tests["test-1"] = backendSkillTest()

	reviewer := &quizStubReviewer{grading: ai.QuizGrading{FinalScore: 74, RecommendedAction: "reject"}}
	svc := NewQuizService(repo, reviewer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	result, err := svc.Submit(context.Background(), dto.QuizSubmitRequest{
		TestID:  "test-1",
		Answers: map[string]string{"q1": "no idea"},
	})
	require.NoError(t, err)
	require.False(t, result.Passed)

	require.Len(t, repo.submissions, 1)
	require.Equal(t, models.TestSubmissionStatusFailed, repo.submissions[0].Status)
}

func TestQuizServiceSanitizesAnswers(t *testing.T) {
	repo := newMemorySkillTestRepo()
	repo.tests["test-1"] = backendSkillTest()

	reviewer := &quizStubReviewer{grading: ai.QuizGrading{FinalScore: 80}}
	svc := NewQuizService(repo, reviewer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.Submit(context.Background(), dto.QuizSubmitRequest{
		TestID:  "test-1",
		Answers: map[string]string{"q1": "<script>alert(1)</script>safe to retry"},
	})
	require.NoError(t, err)

	require.Len(t, reviewer.lastInput.Questions, 2)
	require.Equal(t, "safe to retry", reviewer.lastInput.Questions[0].Answer)
	require.Equal(t, "safe to retry", repo.submissions[0].Answers["q1"])
}

func TestQuizServiceSubmitUnknownTest(t *testing.T) {
	repo := newMemorySkillTestRepo()
	reviewer := &quizStubReviewer{}
	svc := NewQuizService(repo, reviewer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.Submit(context.Background(), dto.QuizSubmitRequest{
		TestID:  "missing",
		Answers: map[string]string{"q1": "hello"},
	})
	require.ErrorIs(t, err, ErrSkillTestNotFound)
	require.Empty(t, repo.submissions)
}

func TestQuizServiceSubmitPropagatesGradingFailure(t *testing.T) {
	repo := newMemorySkillTestRepo()
	repo.tests["test-1"] = backendSkillTest()

	reviewer := &quizStubReviewer{err: errors.New("provider unavailable")}
	svc := NewQuizService(repo, reviewer, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.Submit(context.Background(), dto.QuizSubmitRequest{
		TestID:  "test-1",
		Answers: map[string]string{"q1": "hello"},
	})
	require.Error(t, err)
	require.Empty(t, repo.submissions, "no attempt should be stored when grading fails")
}

func TestQuizServiceGetTest(t *testing.T) {
	repo := newMemorySkillTestRepo()
	repo.tests["test-1"] = backendSkillTest()

	svc := NewQuizService(repo, &quizStubReviewer{}, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	test, err := svc.GetTest(context.Background(), "test-1")
	require.NoError(t, err)
	require.Equal(t, "Backend Fundamentals", test.Title)
	require.Equal(t, 60, test.TimeLimit)
	require.Len(t, test.Questions, 2)

	_, err = svc.GetTest(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSkillTestNotFound)
}
