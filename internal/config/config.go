package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port        string
	CORSOrigins []string

	// Auth
	AuthEnabled     bool
	JWTSecret       string
	PipelineAPIKeys []string

	// Market data providers
	AlphaVantageURL    string
	AlphaVantageAPIKey string
	TiingoURL          string
	TiingoAPIKey       string
	PredictorURL       string
	SourceTimeout      time.Duration
	PriceConcurrency   int

	// Quote cache: "database", "memory" or "redis"
	CacheBackend string
	RedisAddr    string
	RedisDB      int

	// Recompute: "async" (in-process) or "kafka"
	RecomputeMode    string
	RecomputeTimeout time.Duration
	KafkaBrokers     []string
	KafkaTopic       string
	KafkaGroupID     string
}

const defaultJWTSecret = "fallback-secret-key-for-dev-only"

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port:        getEnv("PORT", "5000"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		// Auth
		AuthEnabled:     getBool("AUTH_ENABLED", false),
		JWTSecret:       getEnv("JWT_SECRET", defaultJWTSecret),
		PipelineAPIKeys: splitList(os.Getenv("PIPELINE_API_KEY")),

		// Market data providers
		AlphaVantageURL:    getEnv("ALPHA_VANTAGE_URL", "https://www.alphavantage.co/query"),
		AlphaVantageAPIKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		TiingoURL:          getEnv("TIINGO_URL", "https://api.tiingo.com"),
		TiingoAPIKey:       os.Getenv("TIINGO_API_KEY"),
		PredictorURL:       getEnv("PREDICTOR_URL", "https://investwise-flask.onrender.com/predict"),
		SourceTimeout:      getDuration("SOURCE_TIMEOUT", 10*time.Second),
		PriceConcurrency:   getInt("PRICE_CONCURRENCY", 4),

		// Quote cache
		CacheBackend: strings.ToLower(getEnv("CACHE_BACKEND", "database")),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getInt("REDIS_DB", 0),

		// Recompute
		RecomputeMode:    strings.ToLower(getEnv("RECOMPUTE_MODE", "async")),
		RecomputeTimeout: getDuration("RECOMPUTE_TIMEOUT", time.Minute),
		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "wealth.recompute"),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "investwise-worker"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

func (c *Config) validate() error {
	switch c.CacheBackend {
	case "database", "memory", "redis":
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q: must be database, memory or redis", c.CacheBackend)
	}
	switch c.RecomputeMode {
	case "async", "kafka":
	default:
		return fmt.Errorf("unsupported RECOMPUTE_MODE %q: must be async or kafka", c.RecomputeMode)
	}
	if c.RecomputeMode == "kafka" && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("RECOMPUTE_MODE=kafka requires KAFKA_BROKERS")
	}
	if c.AuthEnabled && c.JWTSecret == defaultJWTSecret {
		log.Println("Warning: AUTH_ENABLED with the default JWT_SECRET")
	}
	return nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, raw, defaultValue)
		return defaultValue
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
