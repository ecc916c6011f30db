package config

import (
	"os"
	"strconv"
	"time"

	"sheetlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	API    APIConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// APIConfig holds JSON API server settings
type APIConfig struct {
	Port    string
	GinMode string
}

// UploadConfig holds upload handling settings
type UploadConfig struct {
	Dir             string
	MaxFileSizeMB   int
	SessionTTL      time.Duration
	MaxParallelLoad int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		API: APIConfig{
			Port:    getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Upload: UploadConfig{
			Dir:             getEnvOrDefault("UPLOAD_DIR", os.TempDir()),
			MaxFileSizeMB:   getEnvIntOrDefault("MAX_UPLOAD_MB", 50),
			SessionTTL:      getEnvDurationOrDefault("SESSION_TTL", 30*time.Minute),
			MaxParallelLoad: getEnvIntOrDefault("MAX_PARALLEL_LOAD", 4),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxFileSizeMB <= 0 {
		return errors.ConfigInvalid("upload size limit must be positive")
	}
	if config.Upload.MaxParallelLoad <= 0 {
		return errors.ConfigInvalid("parallel load limit must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
