package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

type ItineraryConfig struct {
	// Base URL of the itinerary endpoint the planner posts to
	APIURL      string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
}

type LLMConfig struct {
	GeminiAPIKey string
	Temperature  float32
}

// devSessionSecret signs cookies when SESSION_SECRET is unset. It is public,
// so it is refused in production.
const devSessionSecret = "planner-session-secret-change-me"

type SessionConfig struct {
	Secret string
	// InsecureSecret is set when Secret is the built in development key.
	InsecureSecret bool
	TTL            time.Duration
	CookieName     string
}

type ObservabilityConfig struct {
	ServiceName  string
	OTLPEndpoint string
	MetricsAddr  string
	PprofAddr    string
	LogLevel     zapcore.Level
}

type Config struct {
	ServerPort    string
	Environment   string
	Itinerary     ItineraryConfig
	LLM           LLMConfig
	Session       SessionConfig
	Observability ObservabilityConfig
}

func Load() (*Config, error) {
	port := getEnvOrDefault("SERVER_PORT", "8091")

	httpTimeout, err := getDurationOrDefault("ITINERARY_HTTP_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getDurationOrDefault("ITINERARY_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getDurationOrDefault("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	level, err := zapcore.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		ServerPort:  port,
		Environment: getEnvOrDefault("APP_ENV", "development"),
		Itinerary: ItineraryConfig{
			APIURL:      strings.TrimRight(getEnvOrDefault("ITINERARY_API_URL", "http://localhost:"+port), "/"),
			HTTPTimeout: httpTimeout,
			CacheTTL:    cacheTTL,
		},
		LLM: LLMConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			Temperature:  0.7,
		},
		Session: SessionConfig{
			Secret:         getEnvOrDefault("SESSION_SECRET", devSessionSecret),
			InsecureSecret: os.Getenv("SESSION_SECRET") == "",
			TTL:            sessionTTL,
			CookieName:     getEnvOrDefault("SESSION_COOKIE", "planner_session"),
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("SERVICE_NAME", "loci-planner"),
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
			LogLevel:     level,
		},
	}

	if len(cfg.Session.Secret) < 16 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	if cfg.Session.InsecureSecret && cfg.Environment == "production" {
		return nil, fmt.Errorf("SESSION_SECRET must be set when APP_ENV is production")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
