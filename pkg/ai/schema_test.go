package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const validReviewJSON = `{
  "overall_score": 85,
  "categories": {
    "code_quality": 90,
    "best_practices": 80,
    "error_handling": 85,
    "documentation": 70,
    "architecture": 88
  },
  "feedback": {
    "strengths": ["clear module layout"],
    "improvements": ["add input validation"],
    "critical_issues": []
  }
}`

func TestParseCodeReviewValid(t *testing.T) {
	review, err := parseCodeReview(validReviewJSON)
	require.NoError(t, err)
	require.Equal(t, 85, review.OverallScore)
	require.Equal(t, 90, review.Categories.CodeQuality)
	require.Equal(t, 88, review.Categories.Architecture)
	require.Equal(t, []string{"clear module layout"}, review.Feedback.Strengths)
	require.Empty(t, review.Feedback.CriticalIssues)
}

func TestParseCodeReviewRejectsMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "I think the code is pretty good overall."},
		{name: "missing categories", content: `{"overall_score": 85, "feedback": {"strengths": [], "improvements": [], "critical_issues": []}}`},
		{name: "missing category field", content: `{"overall_score": 85, "categories": {"code_quality": 90}, "feedback": {"strengths": [], "improvements": [], "critical_issues": []}}`},
		{name: "score out of range", content: `{"overall_score": 150, "categories": {"code_quality": 90, "best_practices": 80, "error_handling": 85, "documentation": 70, "architecture": 88}, "feedback": {"strengths": [], "improvements": [], "critical_issues": []}}`},
		{name: "wrong feedback type", content: `{"overall_score": 85, "categories": {"code_quality": 90, "best_practices": 80, "error_handling": 85, "documentation": 70, "architecture": 88}, "feedback": {"strengths": "good", "improvements": [], "critical_issues": []}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCodeReview(tc.content)
			require.ErrorIs(t, err, ErrReviewParse)
		})
	}
}

func TestParseQuizGrading(t *testing.T) {
	content := `{
  "questionScores": [
    {"questionId": "q1", "score": 80, "feedback": "solid reasoning"},
    {"questionId": "q2", "score": 60, "feedback": "missing edge cases"}
  ],
  "overallFeedback": "Decent overall.",
  "finalScore": 70,
  "recommendedAction": "proceed"
}`

	grading, err := parseQuizGrading(content)
	require.NoError(t, err)
	require.Len(t, grading.QuestionScores, 2)
	require.Equal(t, "q1", grading.QuestionScores[0].QuestionID)
	require.Equal(t, 70, grading.FinalScore)
	require.Equal(t, "proceed", grading.RecommendedAction)
}

func TestParseQuizGradingClampsFinalScore(t *testing.T) {
	grading, err := parseQuizGrading(`{"finalScore": 150}`)
	require.NoError(t, err)
	require.Equal(t, 100, grading.FinalScore)

	grading, err = parseQuizGrading(`{"finalScore": -10}`)
	require.NoError(t, err)
	require.Zero(t, grading.FinalScore)
}

func TestParseQuizGradingRejectsMalformed(t *testing.T) {
	_, err := parseQuizGrading("final score is about seventy")
	require.ErrorIs(t, err, ErrReviewParse)
}
