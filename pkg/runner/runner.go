package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentgate/grading-api/pkg/sandbox"
)

// ErrUnknownRole indicates no test suite exists for the role. Checked before
// any clone or execution is attempted.
var ErrUnknownRole = errors.New("unknown role")

// Result is the normalized outcome of a role test suite run. Score is
// binary by policy: 100 on a clean exit, 0 on anything else.
type Result struct {
	Score  int      `json:"score"`
	Passed bool     `json:"passed"`
	Output string   `json:"output"`
	Errors []string `json:"errors,omitempty"`
}

// Config groups runner configuration values.
type Config struct {
	Image         string
	Timeout       time.Duration
	MemoryLimitMB int64
	CPUShares     int64
	Logger        zerolog.Logger
}

// Runner dispatches a role identifier to its automated test suite and runs
// it inside the sandbox against a cloned workspace.
type Runner struct {
	executor sandbox.Executor
	cfg      Config
	suites   map[string][]string
	logger   zerolog.Logger
}

// New constructs a runner backed by the given executor.
func New(executor sandbox.Executor, cfg Config) *Runner {
	if cfg.Image == "" {
		cfg.Image = "node:20-bullseye"
	}

	return &Runner{
		executor: executor,
		cfg:      cfg,
		logger:   cfg.Logger.With().Str("component", "test_runner").Logger(),
		suites: map[string][]string{
			"frontend_specialist":    {"npm", "run", "test"},
			"backend_specialist":     {"npm", "run", "test:api"},
			"integration_specialist": {"npm", "run", "test:integration"},
			"devops_specialist":      {"npm", "run", "test:infra"},
			"qa_specialist":          {"npm", "run", "test:qa"},
		},
	}
}

// SuiteForRole returns the test command for a role. Intake uses this to
// reject unknown roles before any clone happens.
func (r *Runner) SuiteForRole(role string) ([]string, error) {
	cmd, ok := r.suites[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	return cmd, nil
}

// Run executes the role's test suite in the workspace. A failing suite is a
// valid grading outcome, not an error: execution failures of any kind are
// absorbed into a zero score with the error text preserved.
func (r *Runner) Run(ctx context.Context, role, workspace string) (Result, error) {
	cmd, err := r.SuiteForRole(role)
	if err != nil {
		return Result{}, err
	}

	execution, execErr := r.executor.Run(ctx, sandbox.ExecutionRequest{
		Image:         r.cfg.Image,
		Cmd:           cmd,
		Timeout:       r.cfg.Timeout,
		Workspace:     workspace,
		MemoryLimitMB: r.cfg.MemoryLimitMB,
		CPUShares:     r.cfg.CPUShares,
	})

	output := combineOutput(execution.Stdout, execution.Stderr)

	switch {
	case execErr != nil:
		message := execErr.Error()
		if output == "" {
			output = message
		}
		r.logger.Info().Str("role", role).Err(execErr).Msg("test suite execution failed")
		return Result{Score: 0, Passed: false, Output: output, Errors: []string{message}}, nil
	case execution.ExitCode != 0:
		message := fmt.Sprintf("process exited with code %d", execution.ExitCode)
		if output == "" {
			output = message
		}
		r.logger.Info().Str("role", role).Int("exit_code", execution.ExitCode).Msg("test suite failed")
		return Result{Score: 0, Passed: false, Output: output, Errors: []string{message}}, nil
	default:
		r.logger.Info().Str("role", role).Dur("duration", execution.Duration).Msg("test suite passed")
		return Result{Score: 100, Passed: true, Output: output}, nil
	}
}

func combineOutput(stdout, stderr string) string {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	default:
		return stdout + "\n" + stderr
	}
}
