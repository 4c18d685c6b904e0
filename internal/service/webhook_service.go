package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentgate/grading-api/internal/dto"
	"github.com/talentgate/grading-api/internal/models"
	"github.com/talentgate/grading-api/internal/observability"
	"github.com/talentgate/grading-api/internal/repository"
	"github.com/talentgate/grading-api/pkg/ai"
	"github.com/talentgate/grading-api/pkg/gitclone"
	"github.com/talentgate/grading-api/pkg/runner"
)

// ErrMissingIdentity indicates the PR description lacks the required
// "Application Email:" marker.
var ErrMissingIdentity = errors.New("application email not found in pull request description")

// ErrMalformedRef indicates the branch ref lacks the expected
// <scope>/<track>/<slug> segment.
var ErrMalformedRef = errors.New("branch ref does not follow the assessment naming convention")

// ErrUnverifiedCandidate indicates no pending application matches the
// claimed (email, role) pair.
var ErrUnverifiedCandidate = errors.New("no matching pending application found")

// ErrDuplicateDelivery indicates this pull request was already accepted by a
// previous delivery.
var ErrDuplicateDelivery = errors.New("duplicate webhook delivery")

// webhookActionOpened is the only pull-request action that triggers grading.
const webhookActionOpened = "opened"

// emailMarkerPattern matches the identity marker in the PR template, e.g.
// "Application Email: jane@example.com" or "Application Email: [jane@example.com]".
var emailMarkerPattern = regexp.MustCompile(`(?i)Application Email:\s*\[?([^\]\s]+@[^\]\s]+)`)

// TestRunner dispatches a role to its automated test suite.
type TestRunner interface {
	SuiteForRole(role string) ([]string, error)
	Run(ctx context.Context, role, workspace string) (runner.Result, error)
}

// DeliveryLock guards against concurrent duplicate webhook deliveries.
type DeliveryLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// WebhookService validates inbound pull-request events, authorizes the
// candidate and drives the grading pipeline.
type WebhookService interface {
	ProcessPullRequest(ctx context.Context, event dto.PullRequestEvent) (dto.WebhookOutcome, error)
}

// WebhookConfig groups pipeline configuration knobs.
type WebhookConfig struct {
	// PipelineTimeout bounds one full fetch → test → review → persist run.
	PipelineTimeout time.Duration
}

type webhookService struct {
	applications repository.ApplicationRepository
	submissions  SubmissionService
	fetcher      gitclone.Fetcher
	runner       TestRunner
	reviewer     ai.Reviewer
	notifier     Notifier
	lock         DeliveryLock
	validator    *validator.Validate
	logger       zerolog.Logger
	config       WebhookConfig
}

// NewWebhookService constructs the webhook intake service.
func NewWebhookService(applicationRepo repository.ApplicationRepository, submissions SubmissionService, fetcher gitclone.Fetcher, testRunner TestRunner, reviewer ai.Reviewer, notifier Notifier, lock DeliveryLock, validate *validator.Validate, logger zerolog.Logger, cfg WebhookConfig) WebhookService {
	if lock == nil {
		lock = noopDeliveryLock{}
	}

	return &webhookService{
		applications: applicationRepo,
		submissions:  submissions,
		fetcher:      fetcher,
		runner:       testRunner,
		reviewer:     reviewer,
		notifier:     notifier,
		lock:         lock,
		validator:    validate,
		logger:       logger.With().Str("component", "webhook_service").Logger(),
		config:       cfg,
	}
}

// ProcessPullRequest handles one webhook delivery end to end. Identity and
// authorization failures are returned as typed errors before any submission
// row exists; once the submission is created, any stage failure moves it to
// the error terminal state instead of leaving it in processing.
func (s *webhookService) ProcessPullRequest(ctx context.Context, event dto.PullRequestEvent) (dto.WebhookOutcome, error) {
	if err := s.validator.Struct(event); err != nil {
		return dto.WebhookOutcome{}, err
	}

	if event.Action != webhookActionOpened {
		s.logger.Debug().Str("action", event.Action).Msg("ignoring pull request event")
		return dto.WebhookOutcome{Ignored: true}, nil
	}

	pr := event.PullRequest

	email, ok := extractEmail(pr.Body)
	if !ok {
		return dto.WebhookOutcome{}, ErrMissingIdentity
	}

	role, err := roleFromRef(pr.Head.Ref)
	if err != nil {
		return dto.WebhookOutcome{}, err
	}

	// Reject unknown roles before any clone happens.
	if _, err := s.runner.SuiteForRole(role); err != nil {
		return dto.WebhookOutcome{}, err
	}

	application, err := s.applications.FindPending(ctx, email, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.WebhookOutcome{}, ErrUnverifiedCandidate
		}
		return dto.WebhookOutcome{}, err
	}

	deliveryKey := fmt.Sprintf("%s#%d", event.Repository.Name, pr.Number)
	acquired, err := s.lock.Acquire(ctx, deliveryKey, s.lockTTL())
	if err != nil {
		s.logger.Warn().Err(err).Str("delivery", deliveryKey).Msg("delivery lock unavailable, relying on database constraint")
	} else if !acquired {
		return dto.WebhookOutcome{}, ErrDuplicateDelivery
	}

	submission := models.Submission{
		CandidateID:    application.CandidateID,
		CandidateEmail: email,
		ApplicationID:  application.ID,
		Role:           role,
		SubmissionURL:  pr.HTMLURL,
		Branch:         pr.Head.Ref,
		PRNumber:       pr.Number,
		RepositoryName: event.Repository.Name,
	}

	if err := s.submissions.Begin(ctx, &submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.WebhookOutcome{}, ErrDuplicateDelivery
		}
		return dto.WebhookOutcome{}, err
	}

	logger := s.logger.With().Str("submission_id", submission.ID).Str("role", role).Logger()
	logger.Info().Int("pr_number", pr.Number).Str("repository", event.Repository.Name).Msg("submission accepted, grading started")

	pipelineCtx := ctx
	if s.config.PipelineTimeout > 0 {
		var cancel context.CancelFunc
		pipelineCtx, cancel = context.WithTimeout(ctx, s.config.PipelineTimeout)
		defer cancel()
	}

	graded, err := s.grade(pipelineCtx, pr, role)
	if err != nil {
		logger.Error().Err(err).Msg("grading pipeline failed")
		observability.SubmissionsProcessed().WithLabelValues(models.SubmissionStatusError).Inc()
		if markErr := s.submissions.MarkError(ctx, submission.ID, err.Error()); markErr != nil {
			logger.Error().Err(markErr).Msg("failed to mark submission as errored")
		}
		return dto.WebhookOutcome{}, err
	}

	finalized, err := s.submissions.Complete(ctx, submission.ID, graded.testResult, graded.review, graded.finalScore)
	if err != nil {
		return dto.WebhookOutcome{}, err
	}

	observability.SubmissionsProcessed().WithLabelValues(finalized.Status).Inc()

	if s.notifier != nil {
		s.notifier.SubmissionGraded(ctx, dto.NewSubmissionResponse(finalized))
	}

	return dto.WebhookOutcome{SubmissionID: submission.ID}, nil
}

type gradedSubmission struct {
	testResult models.TestResult
	review     models.AIReview
	finalScore int
}

// grade runs fetch → test → review → combine. The workspace is scrubbed on
// every exit path.
func (s *webhookService) grade(ctx context.Context, pr dto.PullRequest, role string) (gradedSubmission, error) {
	workspace, err := s.fetcher.Fetch(ctx, pr.Head.Repo.CloneURL, pr.Head.Ref)
	if err != nil {
		return gradedSubmission{}, err
	}
	defer func() {
		if err := workspace.Cleanup(); err != nil {
			s.logger.Error().Err(err).Str("dir", workspace.Dir).Msg("failed to clean workspace")
		}
	}()

	testResult, err := s.runner.Run(ctx, role, workspace.Dir)
	if err != nil {
		return gradedSubmission{}, err
	}

	review, err := s.reviewer.ReviewCode(ctx, ai.CodeReviewInput{
		SubmissionURL: pr.HTMLURL,
		Role:          role,
	})
	if err != nil {
		return gradedSubmission{}, err
	}

	finalScore := CombineScores(testResult.Score, review.OverallScore)

	return gradedSubmission{
		testResult: models.TestResult{
			Score:  testResult.Score,
			Passed: testResult.Passed,
			Output: testResult.Output,
			Errors: testResult.Errors,
		},
		review: models.AIReview{
			OverallScore: review.OverallScore,
			Categories: models.CategoryScores{
				CodeQuality:   review.Categories.CodeQuality,
				BestPractices: review.Categories.BestPractices,
				ErrorHandling: review.Categories.ErrorHandling,
				Documentation: review.Categories.Documentation,
				Architecture:  review.Categories.Architecture,
			},
			Feedback: models.ReviewFeedback{
				Strengths:      review.Feedback.Strengths,
				Improvements:   review.Feedback.Improvements,
				CriticalIssues: review.Feedback.CriticalIssues,
			},
		},
		finalScore: finalScore,
	}, nil
}

func (s *webhookService) lockTTL() time.Duration {
	if s.config.PipelineTimeout > 0 {
		return s.config.PipelineTimeout + time.Minute
	}
	return 15 * time.Minute
}

// extractEmail pulls the claimed candidate email out of the PR body.
func extractEmail(body string) (string, bool) {
	match := emailMarkerPattern.FindStringSubmatch(body)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// roleFromRef derives the role identifier from the branch ref. The naming
// convention is <scope>/<track>/<slug>, e.g. assessment/frontend/jane-doe →
// frontend_specialist.
func roleFromRef(ref string) (string, error) {
	parts := strings.Split(ref, "/")
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	return parts[1] + "_specialist", nil
}
