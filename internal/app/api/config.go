package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/goshop/orderflow/internal/domains/orders/adapters/resilience"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	InventoryBaseURL  string
	InventoryTimeout  time.Duration
	Breaker           resilience.Config
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		InventoryBaseURL:  envDefault("INVENTORY_BASE_URL", "http://localhost:8081"),
		Breaker:           resilience.DefaultConfig(),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	timeoutMs, err := envPositiveInt("INVENTORY_TIMEOUT_MS", 5000)
	if err != nil {
		return Config{}, err
	}
	cfg.InventoryTimeout = time.Duration(timeoutMs) * time.Millisecond

	if raw := strings.TrimSpace(os.Getenv("BREAKER_FAILURE_RATIO")); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil || ratio <= 0 || ratio > 1 {
			return Config{}, fmt.Errorf("BREAKER_FAILURE_RATIO must be a number in (0, 1]")
		}
		cfg.Breaker.FailureRatio = ratio
	}
	minRequests, err := envPositiveInt("BREAKER_MIN_REQUESTS", int(cfg.Breaker.MinRequests))
	if err != nil {
		return Config{}, err
	}
	cfg.Breaker.MinRequests = uint32(minRequests)
	openTimeoutMs, err := envPositiveInt("BREAKER_OPEN_TIMEOUT_MS", int(cfg.Breaker.OpenTimeout/time.Millisecond))
	if err != nil {
		return Config{}, err
	}
	cfg.Breaker.OpenTimeout = time.Duration(openTimeoutMs) * time.Millisecond
	halfOpenCalls, err := envPositiveInt("BREAKER_HALF_OPEN_MAX_CALLS", int(cfg.Breaker.HalfOpenMaxCalls))
	if err != nil {
		return Config{}, err
	}
	cfg.Breaker.HalfOpenMaxCalls = uint32(halfOpenCalls)
	return cfg, nil
}

func envPositiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
