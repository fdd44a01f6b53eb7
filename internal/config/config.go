package config

import (
	"os"
	"strconv"
	"time"

	"sheetviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Storage   StorageConfig
	Upload    UploadConfig
	Ops       OpsConfig
	Log       LogConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// StorageConfig holds file storage settings
type StorageConfig struct {
	BasePath string
}

// UploadConfig holds upload and analysis settings
type UploadConfig struct {
	MaxBytes   int64
	CacheTTL   time.Duration
	SampleRows int
	Sheet      string
}

// OpsConfig holds the health and profiling listener settings
type OpsConfig struct {
	Port     string
	Profiler bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// DefaultMaxUploadBytes is the 5 MB ceiling applied before parsing
const DefaultMaxUploadBytes int64 = 5 * 1024 * 1024

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database:  *loadDatabaseConfig(),
		Server:    *loadServerConfig(),
		Storage:   *loadStorageConfig(),
		Upload:    *loadUploadConfig(),
		Ops:       *loadOpsConfig(),
		Log:       LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:             os.Getenv("DATABASE_URL"),
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		BasePath: getEnvOrDefault("STORAGE_PATH", "uploads/files"),
	}
}

func loadUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxBytes:   getEnvInt64OrDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		CacheTTL:   getEnvDurationOrDefault("ANALYSIS_CACHE_TTL", 10*time.Minute),
		SampleRows: getEnvIntOrDefault("SAMPLE_ROWS", 20),
		Sheet:      getEnvOrDefault("SPREADSHEET_SHEET", ""),
	}
}

func loadOpsConfig() *OpsConfig {
	return &OpsConfig{
		Port:     getEnvOrDefault("OPS_PORT", getEnvOrDefault("PPROF_PORT", "6060")),
		Profiler: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Storage.BasePath == "" {
		return errors.ConfigInvalid("STORAGE_PATH is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Upload.MaxBytes > DefaultMaxUploadBytes {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES cannot exceed 5 MB")
	}
	if config.Ops.Port == "" || config.Ops.Port == config.Server.Port {
		return errors.ConfigInvalid("OPS_PORT must be set and differ from PORT")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
