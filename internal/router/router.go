package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/grading-api/internal/config"
	"github.com/talentgate/grading-api/internal/handler"
	"github.com/talentgate/grading-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	WebhookHandler *handler.WebhookHandler
	AdminHandler   *handler.AdminHandler
	QuizHandler    *handler.QuizHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.WebhookHandler != nil {
		webhook := api.Group("/webhook")
		deps.WebhookHandler.Register(webhook)
	}

	if deps.QuizHandler != nil {
		tests := api.Group("/tests")
		deps.QuizHandler.Register(tests)
	}

	if deps.AdminHandler != nil {
		admin := api.Group("/admin", jwtMiddleware)
		deps.AdminHandler.Register(admin)
	}
}
