package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission states. A submission is created in processing and moves to
// exactly one terminal state.
const (
	SubmissionStatusProcessing = "processing"
	SubmissionStatusPassed     = "passed"
	SubmissionStatusFailed     = "failed"
	SubmissionStatusError      = "error"
)

// TestResult is the normalized outcome of the automated role test suite.
// Score is binary: 100 when the suite exits cleanly, 0 otherwise.
type TestResult struct {
	Score  int      `json:"score"`
	Passed bool     `json:"passed"`
	Output string   `json:"output"`
	Errors []string `json:"errors,omitempty"`
}

// CategoryScores breaks the AI review down into the five fixed criteria.
type CategoryScores struct {
	CodeQuality   int `json:"code_quality"`
	BestPractices int `json:"best_practices"`
	ErrorHandling int `json:"error_handling"`
	Documentation int `json:"documentation"`
	Architecture  int `json:"architecture"`
}

// ReviewFeedback groups the reviewer's free-form findings.
type ReviewFeedback struct {
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	CriticalIssues []string `json:"critical_issues"`
}

// AIReview is the structured review returned by the completion model.
type AIReview struct {
	OverallScore int            `json:"overall_score"`
	Categories   CategoryScores `json:"categories"`
	Feedback     ReviewFeedback `json:"feedback"`
}

// Submission is one graded pull-request attempt by a candidate. The
// (pr_number, repository_name) pair is unique so duplicate webhook
// deliveries cannot create twin submissions for one application.
type Submission struct {
	ID             string      `gorm:"primaryKey;size:36" json:"id"`
	CandidateID    string      `gorm:"size:36;not null" json:"candidate_id"`
	CandidateEmail string      `gorm:"size:255;not null" json:"candidate_email"`
	ApplicationID  string      `gorm:"size:36;not null" json:"application_id"`
	Role           string      `gorm:"size:64;not null" json:"role"`
	SubmissionURL  string      `gorm:"size:512" json:"submission_url"`
	Branch         string      `gorm:"size:255" json:"branch"`
	PRNumber       int         `gorm:"not null;uniqueIndex:idx_submissions_delivery" json:"pr_number"`
	RepositoryName string      `gorm:"size:255;not null;uniqueIndex:idx_submissions_delivery" json:"repository_name"`
	Status         string      `gorm:"size:32;not null" json:"status"`
	TestResult     *TestResult `gorm:"serializer:json" json:"test_result"`
	AIReview       *AIReview   `gorm:"serializer:json" json:"ai_review"`
	FinalScore     *int        `json:"final_score"`
	ErrorDetail    string      `gorm:"type:text" json:"error_detail,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// BeforeCreate assigns a generated identifier when none is present.
func (s *Submission) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Terminal reports whether the submission has reached a final state.
func (s Submission) Terminal() bool {
	switch s.Status {
	case SubmissionStatusPassed, SubmissionStatusFailed, SubmissionStatusError:
		return true
	default:
		return false
	}
}
