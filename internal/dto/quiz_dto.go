package dto

import "github.com/talentgate/grading-api/internal/models"

// QuizSubmitRequest is the candidate's answer set for one skill test.
type QuizSubmitRequest struct {
	TestID  string            `json:"testId" validate:"required"`
	Answers map[string]string `json:"answers" validate:"required"`
}

// QuizSubmitResponse is the graded outcome returned to the candidate.
type QuizSubmitResponse struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Passed   bool   `json:"passed"`
}

// SkillTestResponse is the candidate-facing view of a test definition.
type SkillTestResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []models.Question `json:"questions"`
	TimeLimit   int               `json:"timeLimit"`
}

// NewSkillTestResponse builds a response DTO from a model.
func NewSkillTestResponse(test models.SkillTest) SkillTestResponse {
	return SkillTestResponse{
		ID:          test.ID,
		Title:       test.Title,
		Description: test.Description,
		Questions:   test.Questions,
		TimeLimit:   test.TimeLimitMinutes,
	}
}
