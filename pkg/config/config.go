package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Registry store backends
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	DART DARTConfig

	// Corporate registry
	Registry RegistryConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DARTConfig holds DART (전자공시) API configuration
type DARTConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	RatePerSec int // local limiter, used when Redis is disabled
}

// RegistryConfig holds corp code registry configuration
type RegistryConfig struct {
	Store           string // file | postgres
	CachePath       string // JSON snapshot path for the file store
	RefreshSchedule string // cron expression (with seconds)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External APIs
		DART: DARTConfig{
			APIKey:     getEnv("OPENDART_API_KEY", getEnv("DART_API_KEY", "")),
			BaseURL:    getEnv("DART_BASE_URL", "https://opendart.fss.or.kr/api"),
			Timeout:    getEnvAsDuration("DART_TIMEOUT", "30s"),
			RatePerSec: getEnvAsInt("DART_RATE_PER_SEC", 5),
		},

		Registry: RegistryConfig{
			Store:           getEnv("REGISTRY_STORE", StoreFile),
			CachePath:       getEnv("REGISTRY_CACHE_PATH", "corpCodes.json"),
			RefreshSchedule: getEnv("REGISTRY_REFRESH_SCHEDULE", "0 0 5 * * *"), // 매일 05:00
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithEnvFile loads an explicit .env file, then the environment.
// Variables already set in the environment win over the file.
func LoadWithEnvFile(path string) (*Config, error) {
	if path == "" {
		return Load()
	}

	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("load env file %s: %w", path, err)
	}
	return Load()
}

// RequireDARTKey reports an error when no DART API key is configured.
// Only commands that talk to DART call this; offline commands work without a key.
func (c *Config) RequireDARTKey() error {
	if c.DART.APIKey == "" {
		return fmt.Errorf("OPENDART_API_KEY is required")
	}
	return nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Registry.Store {
	case StoreFile:
		if c.Registry.CachePath == "" {
			return fmt.Errorf("REGISTRY_CACHE_PATH is required for the file store")
		}
	case StorePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when REGISTRY_STORE=postgres")
		}
	default:
		return fmt.Errorf("REGISTRY_STORE must be one of: file, postgres")
	}

	if c.DART.RatePerSec <= 0 {
		return fmt.Errorf("DART_RATE_PER_SEC must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
