// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage backend names.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Upload   UploadConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name          string
	Port          string        // Server port (default: 8080)
	PublicBaseURL string        // Optional, used to build absolute sticker URLs
	ReadTimeout   time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout  time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout   time.Duration // HTTP idle timeout (default: 60s)
}

// DatabaseConfig holds metadata database configuration.
type DatabaseConfig struct {
	Path string // SQLite database file (default: {data}/stickervault.db)
}

// StorageConfig holds sticker image storage configuration.
type StorageConfig struct {
	Backend   string // "local" or "s3" (default: local)
	LocalPath string // Root directory for the local backend (default: {data}/stickers)

	// S3 settings, used when Backend is "s3". Endpoint supports
	// S3-compatible services such as MinIO.
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// UploadConfig holds batch upload limits.
type UploadConfig struct {
	ManifestMaxBytes int64         // Maximum manifest size (default: 10 KiB)
	FileMaxBytes     int64         // Maximum per-file size (default: 1 MiB)
	MinFiles         int           // Minimum files per batch (default: 16)
	MaxFiles         int           // Maximum files per batch (default: 60)
	RateLimitMax     int           // Requests allowed per window (default: 5)
	RateLimitWindow  time.Duration // Rate limit window (default: 1h)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	publicBaseURL := flag.String("public-base-url", "", "Public base URL for sticker links")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	dbPath := flag.String("db-path", "", "Path to the SQLite database file")

	storageBackend := flag.String("storage-backend", "", "Sticker storage backend (local, s3)")
	storagePath := flag.String("storage-path", "", "Root directory for local sticker storage")
	s3Endpoint := flag.String("s3-endpoint", "", "S3 endpoint URL (for MinIO and other S3-compatible stores)")
	s3Region := flag.String("s3-region", "", "S3 region (default: us-east-1)")
	s3Bucket := flag.String("s3-bucket", "", "S3 bucket name")

	uploadMinFiles := flag.String("upload-min-files", "", "Minimum files per upload batch (default: 16)")
	uploadMaxFiles := flag.String("upload-max-files", "", "Maximum files per upload batch (default: 60)")
	rateLimitMax := flag.String("rate-limit-max", "", "Upload requests allowed per window (default: 5)")
	rateLimitWindow := flag.String("rate-limit-window", "", "Upload rate limit window (default: 1h)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Name:          getConfigValue(*serverName, "SERVER_NAME", "StickerVault Server"),
			Port:          getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			PublicBaseURL: getConfigValue(*publicBaseURL, "PUBLIC_BASE_URL", ""),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(*dbPath, "DATABASE_PATH", ""),
		},
		Storage: StorageConfig{
			Backend:     getConfigValue(*storageBackend, "STORAGE_BACKEND", BackendLocal),
			LocalPath:   getConfigValue(*storagePath, "STORAGE_PATH", ""),
			S3Endpoint:  getConfigValue(*s3Endpoint, "S3_ENDPOINT", ""),
			S3Region:    getConfigValue(*s3Region, "S3_REGION", "us-east-1"),
			S3Bucket:    getConfigValue(*s3Bucket, "S3_BUCKET", "stickers"),
			S3AccessKey: getConfigValue("", "S3_ACCESS_KEY", ""),
			S3SecretKey: getConfigValue("", "S3_SECRET_KEY", ""),
		},
		Upload: UploadConfig{
			ManifestMaxBytes: int64(getIntConfigValue("", "UPLOAD_MANIFEST_MAX_BYTES", 10<<10)),
			FileMaxBytes:     int64(getIntConfigValue("", "UPLOAD_FILE_MAX_BYTES", 1<<20)),
			MinFiles:         getIntConfigValue(*uploadMinFiles, "UPLOAD_MIN_FILES", 16),
			MaxFiles:         getIntConfigValue(*uploadMaxFiles, "UPLOAD_MAX_FILES", 60),
			RateLimitMax:     getIntConfigValue(*rateLimitMax, "RATE_LIMIT_MAX", 5),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	windowStr := getConfigValue(*rateLimitWindow, "RATE_LIMIT_WINDOW", "1h")
	window, err := time.ParseDuration(windowStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window %q: %w", windowStr, err)
	}
	cfg.Upload.RateLimitWindow = window

	if err := cfg.expandDataPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Storage.Backend {
	case BackendLocal:
		if c.Storage.LocalPath == "" {
			return errors.New("storage path cannot be empty after expansion")
		}
	case BackendS3:
		if c.Storage.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_BACKEND is s3")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s (must be local or s3)", c.Storage.Backend)
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.Upload.MinFiles < 1 || c.Upload.MaxFiles < c.Upload.MinFiles {
		return fmt.Errorf("invalid upload file bounds: min %d, max %d", c.Upload.MinFiles, c.Upload.MaxFiles)
	}

	if c.Upload.RateLimitMax < 1 {
		return fmt.Errorf("invalid rate limit max: %d", c.Upload.RateLimitMax)
	}

	return nil
}

// expandDataPaths fills in and normalizes the filesystem paths, defaulting
// everything under ~/StickerVault.
func (c *Config) expandDataPaths() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	dataDir := filepath.Join(homeDir, "StickerVault")

	dbPath, err := expandPath(c.Database.Path, filepath.Join(dataDir, "stickervault.db"))
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}
	c.Database.Path = dbPath

	storagePath, err := expandPath(c.Storage.LocalPath, filepath.Join(dataDir, "stickers"))
	if err != nil {
		return fmt.Errorf("invalid storage path: %w", err)
	}
	c.Storage.LocalPath = storagePath

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
