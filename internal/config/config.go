package config

import (
	"os"
	"time"

	"streamdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Paths  PathConfig
	Cache  CacheConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	// DataBasePath is the folder holding one directory per participant.
	DataBasePath string
}

// CacheConfig holds participant-data cache settings
type CacheConfig struct {
	// TTL bounds how long a loaded participant bundle is reused before the
	// files are re-read.
	TTL time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Paths: PathConfig{
			DataBasePath: os.Getenv("DATA_BASE_PATH"),
		},
		Cache: CacheConfig{
			TTL: getEnvDurationOrDefault("CACHE_TTL", 5*time.Minute),
		},
	}

	if config.Paths.DataBasePath == "" {
		return nil, errors.ConfigInvalid("DATA_BASE_PATH is required")
	}
	if info, err := os.Stat(config.Paths.DataBasePath); err != nil || !info.IsDir() {
		return nil, errors.ConfigInvalid("DATA_BASE_PATH does not point to a directory: " + config.Paths.DataBasePath)
	}
	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
