package dto

import (
	"time"

	"github.com/talentgate/grading-api/internal/models"
)

// SubmissionResponse represents a graded submission to API consumers.
type SubmissionResponse struct {
	ID             string             `json:"id"`
	CandidateID    string             `json:"candidate_id"`
	CandidateEmail string             `json:"candidate_email"`
	ApplicationID  string             `json:"application_id"`
	Role           string             `json:"role"`
	SubmissionURL  string             `json:"submission_url"`
	Branch         string             `json:"branch"`
	PRNumber       int                `json:"pr_number"`
	RepositoryName string             `json:"repository_name"`
	Status         string             `json:"status"`
	TestResult     *models.TestResult `json:"test_result,omitempty"`
	AIReview       *models.AIReview   `json:"ai_review,omitempty"`
	FinalScore     *int               `json:"final_score,omitempty"`
	ErrorDetail    string             `json:"error_detail,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewSubmissionResponse builds a response DTO from a model.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:             submission.ID,
		CandidateID:    submission.CandidateID,
		CandidateEmail: submission.CandidateEmail,
		ApplicationID:  submission.ApplicationID,
		Role:           submission.Role,
		SubmissionURL:  submission.SubmissionURL,
		Branch:         submission.Branch,
		PRNumber:       submission.PRNumber,
		RepositoryName: submission.RepositoryName,
		Status:         submission.Status,
		TestResult:     submission.TestResult,
		AIReview:       submission.AIReview,
		FinalScore:     submission.FinalScore,
		ErrorDetail:    submission.ErrorDetail,
		CreatedAt:      submission.CreatedAt,
		UpdatedAt:      submission.UpdatedAt,
	}
}

// NewSubmissionResponseSlice converts a list of models.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}
