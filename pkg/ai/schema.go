package ai

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// reviewSchemaJSON constrains the shape the model must return for a code
// review. Validated before decoding so a half-formed response never reaches
// the score combiner.
const reviewSchemaJSON = `{
  "type": "object",
  "required": ["overall_score", "categories", "feedback"],
  "properties": {
    "overall_score": {"type": "number", "minimum": 0, "maximum": 100},
    "categories": {
      "type": "object",
      "required": ["code_quality", "best_practices", "error_handling", "documentation", "architecture"],
      "properties": {
        "code_quality": {"type": "number", "minimum": 0, "maximum": 100},
        "best_practices": {"type": "number", "minimum": 0, "maximum": 100},
        "error_handling": {"type": "number", "minimum": 0, "maximum": 100},
        "documentation": {"type": "number", "minimum": 0, "maximum": 100},
        "architecture": {"type": "number", "minimum": 0, "maximum": 100}
      }
    },
    "feedback": {
      "type": "object",
      "required": ["strengths", "improvements", "critical_issues"],
      "properties": {
        "strengths": {"type": "array", "items": {"type": "string"}},
        "improvements": {"type": "array", "items": {"type": "string"}},
        "critical_issues": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var reviewSchema = jsonschema.MustCompileString("code_review.json", reviewSchemaJSON)

func parseCodeReview(content string) (CodeReview, error) {
	var value interface{}
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return CodeReview{}, fmt.Errorf("%w: %v", ErrReviewParse, err)
	}

	if err := reviewSchema.Validate(value); err != nil {
		return CodeReview{}, fmt.Errorf("%w: %v", ErrReviewParse, err)
	}

	var review CodeReview
	if err := json.Unmarshal([]byte(content), &review); err != nil {
		return CodeReview{}, fmt.Errorf("%w: %v", ErrReviewParse, err)
	}

	return review, nil
}

func parseQuizGrading(content string) (QuizGrading, error) {
	var grading QuizGrading
	if err := json.Unmarshal([]byte(content), &grading); err != nil {
		return QuizGrading{}, fmt.Errorf("%w: %v", ErrReviewParse, err)
	}

	if grading.FinalScore < 0 {
		grading.FinalScore = 0
	}
	if grading.FinalScore > 100 {
		grading.FinalScore = 100
	}

	return grading, nil
}
