package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath       string
	ServerPort   string
	LogLevel     string
	SettingsPath string
	Portrait     PortraitConfig
}

type PortraitConfig struct {
	Driver            string // "fs" or "s3"
	Dir               string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PathStyle       bool
	FetchRPS          float64
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:       getEnv("DB_PATH", "universe.db"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SettingsPath: getEnv("SETTINGS_PATH", "settings.toml"),
		Portrait: PortraitConfig{
			Driver:            strings.ToLower(getEnv("PORTRAIT_DRIVER", "fs")),
			Dir:               getEnv("PORTRAIT_DIR", "images"),
			S3Bucket:          getEnv("PORTRAIT_S3_BUCKET", ""),
			S3Region:          getEnv("PORTRAIT_S3_REGION", "us-east-1"),
			S3Endpoint:        getEnv("PORTRAIT_S3_ENDPOINT", ""),
			S3AccessKeyID:     getEnv("PORTRAIT_S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getEnv("PORTRAIT_S3_SECRET_ACCESS_KEY", ""),
		},
	}

	var err error
	if cfg.Portrait.S3PathStyle, err = strconv.ParseBool(getEnv("PORTRAIT_S3_PATH_STYLE", "false")); err != nil {
		return nil, fmt.Errorf("invalid PORTRAIT_S3_PATH_STYLE: %w", err)
	}
	if cfg.Portrait.FetchRPS, err = strconv.ParseFloat(getEnv("PORTRAIT_FETCH_RPS", "2"), 64); err != nil {
		return nil, fmt.Errorf("invalid PORTRAIT_FETCH_RPS: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("settings_path", cfg.SettingsPath).
		Str("portrait_driver", cfg.Portrait.Driver).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	switch c.Portrait.Driver {
	case "fs":
		if c.Portrait.Dir == "" {
			return fmt.Errorf("PORTRAIT_DIR is required for the fs portrait driver")
		}
	case "s3":
		if c.Portrait.S3Bucket == "" {
			return fmt.Errorf("PORTRAIT_S3_BUCKET is required for the s3 portrait driver")
		}
		if (c.Portrait.S3AccessKeyID == "") != (c.Portrait.S3SecretAccessKey == "") {
			return fmt.Errorf("PORTRAIT_S3_ACCESS_KEY_ID and PORTRAIT_S3_SECRET_ACCESS_KEY must be set together")
		}
	default:
		return fmt.Errorf("unknown PORTRAIT_DRIVER %q", c.Portrait.Driver)
	}
	if c.Portrait.FetchRPS <= 0 {
		return fmt.Errorf("PORTRAIT_FETCH_RPS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
