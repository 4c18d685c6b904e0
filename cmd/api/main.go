package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/talentgate/grading-api/internal/config"
	"github.com/talentgate/grading-api/internal/database"
	"github.com/talentgate/grading-api/internal/handler"
	"github.com/talentgate/grading-api/internal/middleware"
	"github.com/talentgate/grading-api/internal/models"
	"github.com/talentgate/grading-api/internal/repository"
	"github.com/talentgate/grading-api/internal/router"
	"github.com/talentgate/grading-api/internal/service"
	"github.com/talentgate/grading-api/pkg/ai"
	"github.com/talentgate/grading-api/pkg/gitclone"
	"github.com/talentgate/grading-api/pkg/runner"
	"github.com/talentgate/grading-api/pkg/sandbox"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Candidate{}, &models.Application{}, &models.Submission{}, &models.SkillTest{}, &models.TestSubmission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var deliveryLock service.DeliveryLock
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		deliveryLock = service.NewRedisDeliveryLock(redisClient)
	}

	var notifier service.Notifier
	if cfg.NATSURL != "" {
		natsConn, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
		notifier = service.NewNATSNotifier(natsConn, "", logger)
	}

	executor, err := sandbox.NewDockerExecutor(sandbox.Config{
		Host:          cfg.DockerHost,
		Timeout:       cfg.ExecutionTimeout,
		MemoryLimitMB: int64(cfg.RunnerMemoryMB),
		CPUShares:     int64(cfg.RunnerCPUShares),
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("failed to create sandbox executor: %v", err)
	}
	defer executor.Close()

	testRunner := runner.New(executor, runner.Config{
		Image:         cfg.RunnerImage,
		Timeout:       cfg.ExecutionTimeout,
		MemoryLimitMB: int64(cfg.RunnerMemoryMB),
		CPUShares:     int64(cfg.RunnerCPUShares),
		Logger:        logger,
	})

	fetcher := gitclone.NewGitFetcher(gitclone.Config{
		Root:        cfg.CloneRoot,
		MaxAttempts: cfg.CloneMaxAttempts,
		Logger:      logger,
	})

	reviewer, err := newReviewer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create ai reviewer: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	submissionRepo := repository.NewSubmissionRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	skillTestRepo := repository.NewSkillTestRepository(db)

	submissionService := service.NewSubmissionService(submissionRepo, logger)
	webhookService := service.NewWebhookService(applicationRepo, submissionService, fetcher, testRunner, reviewer, notifier, deliveryLock, validate, logger, service.WebhookConfig{
		PipelineTimeout: cfg.PipelineTimeout,
	})
	quizService := service.NewQuizService(skillTestRepo, reviewer, validate, logger)

	webhookHandler := handler.NewWebhookHandler(webhookService, logger)
	adminHandler := handler.NewAdminHandler(submissionService, logger)
	quizHandler := handler.NewQuizHandler(quizService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})

	var jwtMiddleware fiber.Handler
	if cfg.JWTSecret != "" {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}

	router.Register(app, cfg, router.Dependencies{
		WebhookHandler: webhookHandler,
		AdminHandler:   adminHandler,
		QuizHandler:    quizHandler,
		JWTMiddleware:  jwtMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func newReviewer(cfg config.Config, logger zerolog.Logger) (ai.Reviewer, error) {
	switch cfg.AIProvider {
	case "anthropic":
		return ai.NewAnthropicReviewer(ai.AnthropicConfig{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.AIModel,
		})
	default:
		return ai.NewOpenAIReviewer(ai.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.AIModel,
			MaxTokens:   cfg.AIMaxTokens,
			Temperature: cfg.AITemperature,
			MaxAttempts: cfg.AIMaxAttempts,
			Logger:      logger,
		})
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
