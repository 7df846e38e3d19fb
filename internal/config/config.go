package config

import (
	"os"
	"strconv"

	"maldash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Data      DataConfig
	Analysis  AnalysisConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds optional Postgres connection settings. When URL is
// empty the server runs from in-memory datasets only.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// DataConfig holds data ingestion settings
type DataConfig struct {
	SourceFile string // Excel or CSV surveillance file; empty means demo data
	NotesFile  string // optional markdown methodology notes
}

// AnalysisConfig holds correlation analysis settings
type AnalysisConfig struct {
	CacheSize     int // LRU entries for cached correlation results
	MatrixWorkers int // concurrent pair computations in a matrix sweep
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Data: DataConfig{
			SourceFile: getEnvOrDefault("DATA_FILE", ""),
			NotesFile:  getEnvOrDefault("NOTES_FILE", ""),
		},
		Analysis: AnalysisConfig{
			CacheSize:     getEnvIntOrDefault("RESULT_CACHE_SIZE", 256),
			MatrixWorkers: getEnvIntOrDefault("MATRIX_WORKERS", 4),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
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
	if config.Analysis.CacheSize < 0 {
		return errors.ConfigInvalid("result cache size cannot be negative")
	}
	if config.Analysis.MatrixWorkers < 1 {
		return errors.ConfigInvalid("matrix workers must be at least 1")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
