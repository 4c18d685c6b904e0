package runner

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/grading-api/pkg/sandbox"
)

type stubExecutor struct {
	result  sandbox.ExecutionResult
	err     error
	lastReq sandbox.ExecutionRequest
}

func (s *stubExecutor) Run(_ context.Context, req sandbox.ExecutionRequest) (sandbox.ExecutionResult, error) {
	s.lastReq = req
	return s.result, s.err
}

func testConfig() Config {
	return Config{
		Image:         "node:20-bullseye",
		Timeout:       time.Minute,
		MemoryLimitMB: 1024,
		CPUShares:     512,
		Logger:        zerolog.New(io.Discard),
	}
}

func TestRunnerSuiteForRole(t *testing.T) {
	r := New(&stubExecutor{}, testConfig())

	cases := map[string][]string{
		"frontend_specialist":    {"npm", "run", "test"},
		"backend_specialist":     {"npm", "run", "test:api"},
		"integration_specialist": {"npm", "run", "test:integration"},
		"devops_specialist":      {"npm", "run", "test:infra"},
		"qa_specialist":          {"npm", "run", "test:qa"},
	}

	for role, expected := range cases {
		cmd, err := r.SuiteForRole(role)
		require.NoError(t, err)
		require.Equal(t, expected, cmd)
	}

	_, err := r.SuiteForRole("fullstack_specialist")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestRunnerCleanExitScoresFull(t *testing.T) {
	executor := &stubExecutor{result: sandbox.ExecutionResult{Stdout: "42 passing", ExitCode: 0}}
	r := New(executor, testConfig())

	result, err := r.Run(context.Background(), "backend_specialist", "/tmp/workspace")
	require.NoError(t, err)
	require.Equal(t, Result{Score: 100, Passed: true, Output: "42 passing"}, result)

	require.Equal(t, []string{"npm", "run", "test:api"}, executor.lastReq.Cmd)
	require.Equal(t, "/tmp/workspace", executor.lastReq.Workspace)
	require.Equal(t, "node:20-bullseye", executor.lastReq.Image)
}

func TestRunnerNonZeroExitScoresZero(t *testing.T) {
	executor := &stubExecutor{result: sandbox.ExecutionResult{Stdout: "3 failing", Stderr: "assertion error", ExitCode: 1}}
	r := New(executor, testConfig())

	result, err := r.Run(context.Background(), "frontend_specialist", "/tmp/workspace")
	require.NoError(t, err)
	require.Zero(t, result.Score)
	require.False(t, result.Passed)
	require.Contains(t, result.Output, "3 failing")
	require.Contains(t, result.Output, "assertion error")
	require.Equal(t, []string{"process exited with code 1"}, result.Errors)
}

func TestRunnerExecutionErrorScoresZero(t *testing.T) {
	executor := &stubExecutor{err: errors.New("execution timed out after 1m0s")}
	r := New(executor, testConfig())

	result, err := r.Run(context.Background(), "qa_specialist", "/tmp/workspace")
	require.NoError(t, err, "an execution failure is a grading outcome, not an error")
	require.Zero(t, result.Score)
	require.False(t, result.Passed)
	require.Equal(t, []string{"execution timed out after 1m0s"}, result.Errors)
	require.Contains(t, result.Output, "execution timed out")
}

func TestRunnerUnknownRole(t *testing.T) {
	r := New(&stubExecutor{}, testConfig())

	_, err := r.Run(context.Background(), "manager", "/tmp/workspace")
	require.ErrorIs(t, err, ErrUnknownRole)
}
