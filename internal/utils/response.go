package utils

import "github.com/gofiber/fiber/v2"

// MessageResponse is the envelope for informational responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the envelope for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendMessage sends a 200 response carrying only a message.
func SendMessage(c *fiber.Ctx, message string) error {
	return SendMessageWithStatus(c, fiber.StatusOK, message)
}

// SendMessageWithStatus sends a message envelope using the provided HTTP status code.
func SendMessageWithStatus(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	if message == "" {
		message = "success"
	}

	return c.Status(status).JSON(MessageResponse{Message: message})
}

// SendError sends an error envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}
