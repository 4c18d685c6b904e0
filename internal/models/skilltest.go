package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question types supported by skill tests.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeCoding         = "coding"
	QuestionTypeFreeText       = "free_text"
)

// Test submission states. The quiz flow moves pending → in_progress →
// completed while the candidate works, then passed or failed once graded.
const (
	TestSubmissionStatusPending    = "pending"
	TestSubmissionStatusInProgress = "in_progress"
	TestSubmissionStatusCompleted  = "completed"
	TestSubmissionStatusPassed     = "passed"
	TestSubmissionStatusFailed     = "failed"
)

// Question is a single skill-test question.
type Question struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// SkillTest is a timed question set for one assessment track.
type SkillTest struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Role             string     `gorm:"size:64;not null" json:"role"`
	Questions        []Question `gorm:"serializer:json" json:"questions"`
	PassingScore     int        `gorm:"not null" json:"passing_score"`
	TimeLimitMinutes int        `gorm:"not null" json:"time_limit_minutes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a generated identifier when none is present.
func (t *SkillTest) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// QuestionScore is the grader's verdict for one answered question.
type QuestionScore struct {
	QuestionID string `json:"question_id"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
}

// QuizGrading is the structured grading returned by the completion model
// for a quiz submission.
type QuizGrading struct {
	QuestionScores    []QuestionScore `json:"question_scores"`
	OverallFeedback   string          `json:"overall_feedback"`
	FinalScore        int             `json:"final_score"`
	RecommendedAction string          `json:"recommended_action"`
}

// TestSubmission is one candidate attempt at a skill test.
type TestSubmission struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	TestID      string            `gorm:"size:36;not null" json:"test_id"`
	CandidateID string            `gorm:"size:36" json:"candidate_id"`
	Status      string            `gorm:"size:32;not null" json:"status"`
	Answers     map[string]string `gorm:"serializer:json" json:"answers"`
	Score       *int              `json:"score"`
	AIFeedback  *QuizGrading      `gorm:"serializer:json" json:"ai_feedback"`
	CompletedAt *time.Time        `json:"completed_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Test        SkillTest         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"test"`
}

// BeforeCreate assigns a generated identifier when none is present.
func (s *TestSubmission) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
