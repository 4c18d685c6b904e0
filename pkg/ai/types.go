package ai

import "context"

// CodeReviewInput identifies the submission the model should review.
type CodeReviewInput struct {
	SubmissionURL string
	Role          string
}

// CategoryScores breaks a review down into the five fixed criteria.
type CategoryScores struct {
	CodeQuality   int `json:"code_quality"`
	BestPractices int `json:"best_practices"`
	ErrorHandling int `json:"error_handling"`
	Documentation int `json:"documentation"`
	Architecture  int `json:"architecture"`
}

// ReviewFeedback groups the reviewer's findings.
type ReviewFeedback struct {
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
	CriticalIssues []string `json:"critical_issues"`
}

// CodeReview is the structured result of an AI code review.
type CodeReview struct {
	OverallScore int            `json:"overall_score"`
	Categories   CategoryScores `json:"categories"`
	Feedback     ReviewFeedback `json:"feedback"`
}

// QuizQuestion pairs one skill-test question with the candidate's answer.
type QuizQuestion struct {
	ID       string
	Type     string
	Question string
	Answer   string
}

// QuizGradingInput carries the full answer set to grade.
type QuizGradingInput struct {
	Questions []QuizQuestion
}

// QuestionScore is the grader's verdict for a single question.
type QuestionScore struct {
	QuestionID string `json:"questionId"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
}

// QuizGrading is the structured result of grading a quiz submission.
type QuizGrading struct {
	QuestionScores    []QuestionScore `json:"questionScores"`
	OverallFeedback   string          `json:"overallFeedback"`
	FinalScore        int             `json:"finalScore"`
	RecommendedAction string          `json:"recommendedAction"`
}

// Reviewer describes an AI model capable of reviewing code submissions and
// grading quiz answers.
type Reviewer interface {
	ReviewCode(ctx context.Context, input CodeReviewInput) (CodeReview, error)
	GradeQuiz(ctx context.Context, input QuizGradingInput) (QuizGrading, error)
}
