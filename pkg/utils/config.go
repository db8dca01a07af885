package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"menuhub/pkg/logger"
)

type Config struct {
	AppEnv   string
	Logger   LoggerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Server   ServerConfig
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type DatabaseConfig struct {
	Driver      string // "sqlite" or "postgres"
	SQLitePath  string
	PostgresURL string
	Timeout     time.Duration
}

// StorageConfig points at an S3-compatible bucket (Supabase Storage, R2, MinIO).
type StorageConfig struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	KeyPrefix     string
}

type AuthConfig struct {
	JWTSecret         string
	JWTIssuer         string
	JWTDuration       time.Duration
	AdminPasswordHash string
}

type ServerConfig struct {
	HTTPAddr   string
	StaticMenu string
}

// LoadEnv reads an optional .env file and builds the config from the environment.
func LoadEnv() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv: getEnv("APP_ENV", "production"),
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "json"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("STORE_DRIVER", "sqlite"),
			SQLitePath:  getEnv("MENUHUB_DB_PATH", defaultSQLitePath()),
			PostgresURL: getEnv("DATABASE_URL", ""),
			Timeout:     time.Duration(getEnvInt("STORE_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Storage: StorageConfig{
			Endpoint:      getEnv("S3_ENDPOINT", ""),
			Region:        getEnv("S3_REGION", "auto"),
			AccessKey:     getEnv("S3_ACCESS_KEY", ""),
			SecretKey:     getEnv("S3_SECRET_KEY", ""),
			Bucket:        getEnv("S3_BUCKET", "menu-images"),
			PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
			KeyPrefix:     getEnv("S3_KEY_PREFIX", "menu-items"),
		},
		Auth:   LoadAuthConfig(),
		Server: ServerConfig{
			HTTPAddr:   getEnv("MENUHUB_HTTP_ADDR", ":8080"),
			StaticMenu: getEnv("MENUHUB_STATIC_MENU", "public/static/menu.json"),
		},
	}
}

// LoadAuthConfig has no fallback secret: admin endpoints stay disabled until
// both MENUHUB_JWT_SECRET and MENUHUB_ADMIN_PASSWORD_HASH are set.
func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:         os.Getenv("MENUHUB_JWT_SECRET"),
		JWTIssuer:         getEnv("MENUHUB_JWT_ISSUER", "menuhub"),
		JWTDuration:       time.Duration(getEnvInt("MENUHUB_JWT_TTL_HOURS", 24)) * time.Hour,
		AdminPasswordHash: os.Getenv("MENUHUB_ADMIN_PASSWORD_HASH"),
	}
}

// AdminEnabled reports whether admin login and writes can be served.
func (a AuthConfig) AdminEnabled() bool {
	return a.JWTSecret != "" && a.AdminPasswordHash != ""
}

// ZapConfig maps the logger section onto the zap builder. APP_ENV=development
// switches to colored console output at debug level.
func (c *Config) ZapConfig() *logger.ZapLoggerConfig {
	cfg := &logger.ZapLoggerConfig{
		Encoding:          c.Logger.Encoding,
		Level:             c.Logger.Level,
		DisableCaller:     c.Logger.DisableCaller,
		DisableStacktrace: c.Logger.DisableStacktrace,
	}
	if c.AppEnv == "development" {
		cfg.IsDevelopment = true
		cfg.Encoding = "console"
		cfg.Level = "debug"
	}
	return cfg
}

func defaultSQLitePath() string {
	// local default: ~/.menuhub/menu.db
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".menuhub", "menu.db")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
