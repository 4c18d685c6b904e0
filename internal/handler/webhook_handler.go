package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentgate/grading-api/internal/dto"
	"github.com/talentgate/grading-api/internal/service"
	"github.com/talentgate/grading-api/internal/utils"
	"github.com/talentgate/grading-api/pkg/runner"
)

// WebhookHandler receives GitHub pull-request events and hands them to the
// grading pipeline.
type WebhookHandler struct {
	service service.WebhookService
	logger  zerolog.Logger
}

// NewWebhookHandler builds a webhook handler instance.
func NewWebhookHandler(service service.WebhookService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger.With().Str("component", "webhook_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *WebhookHandler) Register(router fiber.Router) {
	router.Post("/github", h.pullRequest)
}

func (h *WebhookHandler) pullRequest(c *fiber.Ctx) error {
	var event dto.PullRequestEvent
	if err := c.BodyParser(&event); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := h.service.ProcessPullRequest(c.UserContext(), event)
	if err != nil {
		return h.handleError(c, err)
	}

	if outcome.Ignored {
		return utils.SendMessage(c, "Event ignored")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Submission processed successfully",
		"submissionId": outcome.SubmissionID,
	})
}

func (h *WebhookHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrMissingIdentity):
		return utils.SendError(c, fiber.StatusBadRequest, "Application email not found in PR description. Please use the PR template and provide your application email.")
	case errors.Is(err, service.ErrUnverifiedCandidate):
		return utils.SendError(c, fiber.StatusBadRequest, "No matching application found. Please ensure you've entered the correct application email.")
	case errors.Is(err, service.ErrMalformedRef):
		return utils.SendError(c, fiber.StatusBadRequest, "Branch name does not follow the <type>/<role>/<identifier> convention.")
	case errors.Is(err, runner.ErrUnknownRole):
		return utils.SendError(c, fiber.StatusBadRequest, "Unknown role in branch name. Supported tracks: frontend, backend, integration, devops, qa.")
	case errors.Is(err, service.ErrDuplicateDelivery):
		return utils.SendMessage(c, "Submission already received")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("failed to process submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to process submission")
	}
}
