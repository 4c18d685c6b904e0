package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the grading service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	NATSURL          string
	JWTSecret        string
	AIProvider       string
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	AIModel          string
	AIMaxTokens      int
	AITemperature    float32
	AIMaxAttempts    int
	CloneRoot        string
	CloneMaxAttempts int
	PipelineTimeout  time.Duration
	ExecutionTimeout time.Duration
	RunnerImage      string
	RunnerMemoryMB   int
	RunnerCPUShares  int
	DockerHost       string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GRADER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "TalentGate Grading API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.max_tokens", 1500)
	v.SetDefault("ai.temperature", 0.5)
	v.SetDefault("ai.max_attempts", 3)
	v.SetDefault("clone.max_attempts", 3)
	v.SetDefault("pipeline.timeout", "10m")
	v.SetDefault("execution.timeout", "5m")
	v.SetDefault("runner.image", "node:20-bullseye")
	v.SetDefault("runner.memory_mb", 2048)
	v.SetDefault("runner.cpu_shares", 512)

	pipelineTimeout, err := time.ParseDuration(v.GetString("pipeline.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid pipeline timeout: %w", err)
	}

	executionTimeout, err := time.ParseDuration(v.GetString("execution.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid execution timeout: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		NATSURL:          v.GetString("nats.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		AIProvider:       strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		AnthropicAPIKey:  v.GetString("anthropic_api_key"),
		AIModel:          v.GetString("ai.model"),
		AIMaxTokens:      v.GetInt("ai.max_tokens"),
		AITemperature:    float32(v.GetFloat64("ai.temperature")),
		AIMaxAttempts:    v.GetInt("ai.max_attempts"),
		CloneRoot:        v.GetString("clone.root"),
		CloneMaxAttempts: v.GetInt("clone.max_attempts"),
		PipelineTimeout:  pipelineTimeout,
		ExecutionTimeout: executionTimeout,
		RunnerImage:      v.GetString("runner.image"),
		RunnerMemoryMB:   v.GetInt("runner.memory_mb"),
		RunnerCPUShares:  v.GetInt("runner.cpu_shares"),
		DockerHost:       v.GetString("docker_host"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.AIMaxTokens <= 0 {
		cfg.AIMaxTokens = 1500
	}

	if cfg.AIMaxAttempts <= 0 {
		cfg.AIMaxAttempts = 3
	}

	return cfg, nil
}
