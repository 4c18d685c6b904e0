package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentgate/grading-api/internal/service"
	"github.com/talentgate/grading-api/internal/utils"
)

// AdminHandler exposes read endpoints for the hiring team.
type AdminHandler struct {
	submissions service.SubmissionService
	logger      zerolog.Logger
}

// NewAdminHandler builds an admin handler instance.
func NewAdminHandler(submissions service.SubmissionService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		submissions: submissions,
		logger:      logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/submissions", h.list)
	router.Get("/submissions/:id", h.get)
}

func (h *AdminHandler) list(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	submissions, err := h.submissions.List(c.UserContext(), limit)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(submissions)
}

func (h *AdminHandler) get(c *fiber.Ctx) error {
	submission, err := h.submissions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(submission)
}

func (h *AdminHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Submission not found")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
