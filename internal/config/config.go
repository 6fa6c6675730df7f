package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Storage   StorageConfig
	Minio     MinioConfig
	JWT       JWTConfig
	Treasurer TreasurerConfig

	// CategoryRequired enforces the stricter submission ruleset where a
	// committee category must be supplied.
	CategoryRequired bool

	// PollInterval is the request-list refresh cadence for watchers
	PollInterval time.Duration

	// ReminderCron schedules the daily pending-requests summary
	ReminderCron string

	AllowedOrigins string
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	// Backend is one of "memory", "mysql", "mongo"
	Backend  string
	Database DatabaseConfig
	MongoURI string
	MongoDB  string
}

// DatabaseConfig holds relational database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// MinioConfig holds object storage configuration for receipt images.
// When Enabled is false, receipts are stored inline as data URIs.
type MinioConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// TreasurerConfig holds the fixed treasurer credential pair.
// The plaintext default is a documented weakness of the original
// system; set TREASURER_PASSWORD_BCRYPT to verify against a hash
// instead of the plaintext constant.
type TreasurerConfig struct {
	Email          string
	Password       string
	PasswordBcrypt string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	backend := strings.TrimSpace(getEnv("STORAGE_BACKEND", "memory"))
	if backend != "memory" && backend != "mysql" && backend != "mongo" {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: '%s' (must be 'memory', 'mysql' or 'mongo')", backend)
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		Storage: StorageConfig{
			Backend:  backend,
			Database: loadDatabaseConfig(appMode),
			MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:  getEnv("MONGO_DB", "betamoney"),
		},
		Minio: MinioConfig{
			Enabled:   getEnvBool("MINIO_ENABLED", false),
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "betamoney-receipts"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "default_secret"),
			TTL:    time.Duration(getEnvInt("TOKEN_TTL_HOURS", 12)) * time.Hour,
		},
		Treasurer: TreasurerConfig{
			Email:          getEnv("TREASURER_EMAIL", "treasurer@betathetapi.com"),
			Password:       getEnv("TREASURER_PASSWORD", "BetaMoney2024!"),
			PasswordBcrypt: getEnv("TREASURER_PASSWORD_BCRYPT", ""),
		},
		CategoryRequired: getEnvBool("CATEGORY_REQUIRED", true),
		PollInterval:     time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 5)) * time.Second,
		ReminderCron:     getEnv("REMINDER_CRON", "30 8 * * *"),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", ""),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, STORAGE: %s]", appMode, backend)
	return config, nil
}

// loadDatabaseConfig loads relational database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "betamoney"),
	}
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// GetAllowedOrigins returns CORS origins for production mode
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins != "" {
		return c.AllowedOrigins
	}
	return "https://app.betamoney.org"
}

// getEnv gets an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

// getEnvBool gets a boolean environment variable with a fallback default
func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}
