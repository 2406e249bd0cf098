package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration, loaded from .env and the
// environment.
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Scoring   ScoringConfig
	RateLimit RateLimitConfig
	AI        AIConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// RedisConfig: an empty Addr selects the in-memory cache, which holds at
// most MemoryCacheSize entries.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	TTL             time.Duration
	MemoryCacheSize int
}

// DatabaseConfig: an empty URL keeps the last MemoryHistorySize scores in
// memory.
type DatabaseConfig struct {
	URL               string
	MaxConns          int32
	MemoryHistorySize int
}

type LoggingConfig struct {
	Level         string
	Format        string
	FilePath      string
	RotationSize  int
	RetentionDays int
}

type ScoringConfig struct {
	BatchConcurrency int
	MaxBatchSize     int
}

type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

type AIConfig struct {
	APIKey string
}

// Load loads configuration from the .env file named by envFile (".env" when
// empty) and the process environment. A missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	var errs []error
	intEnv := func(key string, fallback int) int {
		v, err := getEnvInt(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	durEnv := func(key string, fallback time.Duration) time.Duration {
		v, err := getEnvDuration(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     durEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    durEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     durEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: durEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", ""),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              intEnv("REDIS_DB", 0),
			TTL:             durEnv("REDIS_TTL", 24*time.Hour),
			MemoryCacheSize: intEnv("MEMORY_CACHE_SIZE", 10000),
		},
		Database: DatabaseConfig{
			URL:               getEnv("DATABASE_URL", ""),
			MaxConns:          int32(intEnv("DATABASE_MAX_CONNS", 10)),
			MemoryHistorySize: intEnv("MEMORY_HISTORY_SIZE", 1000),
		},
		Logging: LoggingConfig{
			Level:         getEnv("LOG_LEVEL", "info"),
			Format:        getEnv("LOG_FORMAT", "pretty"),
			FilePath:      getEnv("LOG_FILE_PATH", ""),
			RotationSize:  intEnv("LOG_ROTATION_SIZE_MB", 100),
			RetentionDays: intEnv("LOG_RETENTION_DAYS", 30),
		},
		Scoring: ScoringConfig{
			BatchConcurrency: intEnv("BATCH_CONCURRENCY", 8),
			MaxBatchSize:     intEnv("MAX_BATCH_SIZE", 500),
		},
		RateLimit: RateLimitConfig{
			Capacity: intEnv("RATE_LIMIT_CAPACITY", 5),
			Window:   durEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		AI: AIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
		},
	}

	if len(errs) > 0 {
		return nil, errs[0]
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scoring.BatchConcurrency <= 0 {
		return fmt.Errorf("BATCH_CONCURRENCY must be positive, got %d", c.Scoring.BatchConcurrency)
	}
	if c.Scoring.MaxBatchSize <= 0 {
		return fmt.Errorf("MAX_BATCH_SIZE must be positive, got %d", c.Scoring.MaxBatchSize)
	}
	if c.Redis.MemoryCacheSize <= 0 {
		return fmt.Errorf("MEMORY_CACHE_SIZE must be positive, got %d", c.Redis.MemoryCacheSize)
	}
	if c.Database.MemoryHistorySize <= 0 {
		return fmt.Errorf("MEMORY_HISTORY_SIZE must be positive, got %d", c.Database.MemoryHistorySize)
	}
	if c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", c.RateLimit.Capacity)
	}
	switch c.Logging.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or pretty, got %q", c.Logging.Format)
	}
	return nil
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid duration %q", key, value)
	}
	return d, nil
}
