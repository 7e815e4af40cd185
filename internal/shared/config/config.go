package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	LogLevel        string
	LLMProvider     string
	LLMModel        string
	LLMVisionModel  string
	LLMBaseURL      string
	OpenAIAPIKey    string
	LLMTimeout      time.Duration
	DatabaseURL     string
	UsageStore      string
	RedisAddr       string
	RedisPassword   string
	DailyLLMLimit   int
	JWTSecret       string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// ConfigurationError reports setup that prevents the service from starting.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: missing or invalid " + strings.Join(e.Missing, ", ")
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	if files := existing(".env", "cmd/.env"); len(files) > 0 {
		_ = godotenv.Load(files...)
	}

	llmModel := getEnv("LLM_MODEL", "gpt-4o-mini")
	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LLMProvider:     normalizeProvider(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:        llmModel,
		LLMVisionModel:  getEnv("LLM_VISION_MODEL", llmModel),
		LLMBaseURL:      getEnv("LLM_BASE_URL", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		LLMTimeout:      getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		UsageStore:      normalizeStore(getEnv("USAGE_STORE", "memory")),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		DailyLLMLimit:   getEnvInt("DAILY_LLM_LIMIT", 20),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

// Validate checks settings that must be present before serving traffic.
func (c Config) Validate() error {
	var missing []string
	if c.LLMProvider == "openai" {
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
		if strings.TrimSpace(c.LLMModel) == "" {
			missing = append(missing, "LLM_MODEL")
		}
	}
	if c.LLMTimeout <= 0 {
		missing = append(missing, "LLM_TIMEOUT")
	}
	switch c.UsageStore {
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case "redis":
		if strings.TrimSpace(c.RedisAddr) == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	}
	if c.IsProduction() && strings.TrimSpace(c.JWTSecret) == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

// IsProduction reports whether ENV selects production. Dev-only routes and
// the dev JWT secret are disabled there.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func existing(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if v, err := time.ParseDuration(raw); err == nil {
		return v
	}
	// Plain integers are seconds.
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	fmt.Fprintf(os.Stderr, "config: %s invalid duration %q, using %s\n", key, raw, def)
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none", "off", "disabled":
		return "none"
	default:
		return "openai"
	}
}

func normalizeStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "redis":
		return "redis"
	default:
		return "memory"
	}
}
