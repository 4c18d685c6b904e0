package service

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestCombineScores(t *testing.T) {
	cases := []struct {
		name      string
		testScore int
		aiScore   int
		expected  int
	}{
		{name: "both perfect", testScore: 100, aiScore: 100, expected: 100},
		{name: "both zero", testScore: 0, aiScore: 0, expected: 0},
		{name: "tests pass review zero", testScore: 100, aiScore: 0, expected: 40},
		{name: "tests fail review perfect", testScore: 0, aiScore: 100, expected: 60},
		{name: "rounds half up", testScore: 0, aiScore: 81, expected: 49},
		{name: "rounds down", testScore: 100, aiScore: 72, expected: 83},
		{name: "clamps above hundred", testScore: 100, aiScore: 110, expected: 100},
		{name: "clamps below zero", testScore: -10, aiScore: -10, expected: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, CombineScores(tc.testScore, tc.aiScore))
		})
	}
}

func TestCombineScoresPassThresholdBoundary(t *testing.T) {
	// 100*0.4 + 50*0.6 = 70, exactly at the threshold.
	require.Equal(t, PassThreshold, CombineScores(100, 50))
	// 100*0.4 + 49*0.6 = 69.4 → 69, just under.
	require.Equal(t, 69, CombineScores(100, 49))
}
