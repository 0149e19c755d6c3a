package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string

	// Token signing. The secret is loaded once at startup and handed to the
	// token service explicitly; nothing reads it from the environment later.
	SecretKey   string
	TokenExpiry time.Duration

	// File uploads.
	UploadDir         string
	MaxFileSize       int64
	AllowedExtensions []string
}

func Load() Config {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/guru?parseTime=true"),
		SecretKey:         getEnv("SECRET_KEY", "dev-secret-change-in-production"),
		TokenExpiry:       time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 10080)) * time.Minute, // 7 days
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		MaxFileSize:       int64(getEnvInt("MAX_FILE_SIZE", 30*1024*1024)),
		AllowedExtensions: strings.Split(getEnv("ALLOWED_EXTENSIONS", "jpg,jpeg,png,gif,webp"), ","),
	}

	if cfg.Env == "production" && cfg.SecretKey == "dev-secret-change-in-production" {
		slog.Error("SECRET_KEY must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("ignoring non-numeric env value", "key", key, "value", v)
	}
	return fallback
}
