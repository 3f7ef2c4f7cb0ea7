package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvContentDir = "CALCSITE_CONTENT_DIR"
	EnvOutputDir  = "CALCSITE_OUTPUT_DIR"
	EnvBaseURL    = "CALCSITE_BASE_URL"
	EnvLogLevel   = "CALCSITE_LOG_LEVEL"
	EnvLogFormat  = "CALCSITE_LOG_FORMAT"

	DefaultContentDir = "content"
	DefaultOutputDir  = "public"
	DefaultEnvFile    = ".env"
)

type Config struct {
	ContentDir string
	OutputDir  string
	BaseURL    string
	LogLevel   string
	LogFormat  string
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// ignored.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// LoadConfig reads the optional env file and returns the configuration
// found in the environment, with defaults for unset values.
func LoadConfig(envFile string) (Config, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	return Config{
		ContentDir: getEnv(EnvContentDir, DefaultContentDir),
		OutputDir:  getEnv(EnvOutputDir, DefaultOutputDir),
		BaseURL:    os.Getenv(EnvBaseURL),
		LogLevel:   getEnv(EnvLogLevel, "info"),
		LogFormat:  getEnv(EnvLogFormat, "text"),
	}, nil
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
