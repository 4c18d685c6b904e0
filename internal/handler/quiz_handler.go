package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/talentgate/grading-api/internal/dto"
	"github.com/talentgate/grading-api/internal/service"
	"github.com/talentgate/grading-api/internal/utils"
)

// QuizHandler exposes the skill-test endpoints candidates interact with.
type QuizHandler struct {
	service service.QuizService
	logger  zerolog.Logger
}

// NewQuizHandler builds a quiz handler instance.
func NewQuizHandler(service service.QuizService, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		service: service,
		logger:  logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *QuizHandler) Register(router fiber.Router) {
	router.Post("/submit", h.submit)
	router.Get("/:id", h.get)
}

func (h *QuizHandler) get(c *fiber.Ctx) error {
	test, err := h.service.GetTest(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(test)
}

func (h *QuizHandler) submit(c *fiber.Ctx) error {
	var payload dto.QuizSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Submit(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *QuizHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSkillTestNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Test not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("failed to grade test submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to grade test submission")
	}
}
