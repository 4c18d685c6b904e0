package service

import "math"

// Weighting policy for the webhook flow. Fixed constants, not configurable
// per role.
const (
	weightAutomatedTests = 0.4
	weightAIReview       = 0.6

	// PassThreshold is the final score gating passed/failed for the
	// webhook flow. The quiz flow uses each test's own passing score
	// instead.
	PassThreshold = 70
)

// CombineScores merges the automated-test score and the AI review score
// into the final 0-100 score under the fixed weighting policy.
func CombineScores(testScore, aiScore int) int {
	final := int(math.Round(float64(testScore)*weightAutomatedTests + float64(aiScore)*weightAIReview))
	if final < 0 {
		return 0
	}
	if final > 100 {
		return 100
	}
	return final
}
