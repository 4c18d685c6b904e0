package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentgate/grading-api/internal/dto"
	"github.com/talentgate/grading-api/internal/models"
	"github.com/talentgate/grading-api/internal/repository"
)

// ErrSubmissionNotFound indicates the submission cannot be located.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrSubmissionFinalized indicates the submission already reached a terminal
// state. Terminal records are immutable except for administrative overwrite.
var ErrSubmissionFinalized = errors.New("submission already finalized")

// SubmissionService owns the submission record's state transitions. It is
// the only writer of outcome fields.
type SubmissionService interface {
	Begin(ctx context.Context, submission *models.Submission) error
	Complete(ctx context.Context, id string, testResult models.TestResult, review models.AIReview, finalScore int) (models.Submission, error)
	MarkError(ctx context.Context, id, detail string) error
	List(ctx context.Context, limit int) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, id string) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	logger      zerolog.Logger
}

// NewSubmissionService constructs the submission lifecycle service.
func NewSubmissionService(submissionRepo repository.SubmissionRepository, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissionRepo,
		logger:      logger.With().Str("component", "submission_service").Logger(),
	}
}

// Begin creates the submission in the processing state, before any scoring
// runs.
func (s *submissionService) Begin(ctx context.Context, submission *models.Submission) error {
	submission.Status = models.SubmissionStatusProcessing
	submission.TestResult = nil
	submission.AIReview = nil
	submission.FinalScore = nil
	return s.submissions.Create(ctx, submission)
}

// Complete writes both result payloads, the final score and the terminal
// status in a single update, so no partial-result state is ever visible.
func (s *submissionService) Complete(ctx context.Context, id string, testResult models.TestResult, review models.AIReview, finalScore int) (models.Submission, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	if submission.Terminal() {
		return models.Submission{}, ErrSubmissionFinalized
	}

	status := models.SubmissionStatusFailed
	if finalScore >= PassThreshold {
		status = models.SubmissionStatusPassed
	}

	submission.Status = status
	submission.TestResult = &testResult
	submission.AIReview = &review
	submission.FinalScore = &finalScore

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return models.Submission{}, err
	}

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("status", status).
		Int("final_score", finalScore).
		Msg("submission graded")

	return submission, nil
}

// MarkError moves a stuck processing submission into the explicit error
// terminal state with diagnostic detail, instead of leaving it in
// processing indefinitely.
func (s *submissionService) MarkError(ctx context.Context, id, detail string) error {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	if submission.Terminal() {
		return ErrSubmissionFinalized
	}

	submission.Status = models.SubmissionStatusError
	submission.ErrorDetail = detail

	return s.submissions.Update(ctx, &submission)
}

// List returns recent submissions, newest first.
func (s *submissionService) List(ctx context.Context, limit int) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewSubmissionResponseSlice(submissions), nil
}

// Get returns one submission by id.
func (s *submissionService) Get(ctx context.Context, id string) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	return dto.NewSubmissionResponse(submission), nil
}
