package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/grading-api/internal/dto"
	"github.com/talentgate/grading-api/internal/handler"
	"github.com/talentgate/grading-api/internal/models"
	"github.com/talentgate/grading-api/internal/service"
)

type mockSubmissionService struct {
	listed    []dto.SubmissionResponse
	fetched   dto.SubmissionResponse
	err       error
	lastLimit int
	lastID    string
}

func (m *mockSubmissionService) Begin(_ context.Context, _ *models.Submission) error {
	return errors.New("not used")
}

func (m *mockSubmissionService) Complete(_ context.Context, _ string, _ models.TestResult, _ models.AIReview, _ int) (models.Submission, error) {
	return models.Submission{}, errors.New("not used")
}

func (m *mockSubmissionService) MarkError(_ context.Context, _, _ string) error {
	return errors.New("not used")
}

func (m *mockSubmissionService) List(_ context.Context, limit int) ([]dto.SubmissionResponse, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.listed, nil
}

func (m *mockSubmissionService) Get(_ context.Context, id string) (dto.SubmissionResponse, error) {
	m.lastID = id
	if m.err != nil {
		return dto.SubmissionResponse{}, m.err
	}
	return m.fetched, nil
}

func adminApp(svc service.SubmissionService) *fiber.App {
	app := fiber.New()
	handler.NewAdminHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/admin"))
	return app
}

func TestAdminHandlerListSubmissions(t *testing.T) {
	svc := &mockSubmissionService{listed: []dto.SubmissionResponse{
		{ID: "sub-2", Status: models.SubmissionStatusPassed},
		{ID: "sub-1", Status: models.SubmissionStatusFailed},
	}}
	app := adminApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions?limit=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 10, svc.lastLimit)

	var listed []dto.SubmissionResponse
	decodeResponse(t, resp, &listed)
	require.Len(t, listed, 2)
	require.Equal(t, "sub-2", listed[0].ID)
}

func TestAdminHandlerListRejectsBadLimit(t *testing.T) {
	app := adminApp(&mockSubmissionService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions?limit=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminHandlerGetSubmission(t *testing.T) {
	score := 88
	svc := &mockSubmissionService{fetched: dto.SubmissionResponse{ID: "sub-1", Status: models.SubmissionStatusPassed, FinalScore: &score}}
	app := adminApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions/sub-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "sub-1", svc.lastID)

	var fetched dto.SubmissionResponse
	decodeResponse(t, resp, &fetched)
	require.Equal(t, "sub-1", fetched.ID)
	require.NotNil(t, fetched.FinalScore)
	require.Equal(t, 88, *fetched.FinalScore)
}

func TestAdminHandlerGetMissingSubmission(t *testing.T) {
	app := adminApp(&mockSubmissionService{err: service.ErrSubmissionNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var response struct {
		Error string `json:"error"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "Submission not found", response.Error)
}
