package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration. When URL is empty the service runs
// on an embedded SQLite file instead of PostgreSQL.
type DBConfig struct {
	URL             string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// SessionConfig holds session-cookie signing configuration
type SessionConfig struct {
	SigningKey string
	TTLHours   int
}

// CaptchaConfig holds the outbound CAPTCHA verification settings
type CaptchaConfig struct {
	Secret    string
	VerifyURL string
	Timeout   time.Duration
}

// UploadConfig holds document upload settings
type UploadConfig struct {
	Dir     string
	MaxSize string
}

// WizardConfig holds wizard slot store settings
type WizardConfig struct {
	SlotTTL time.Duration
}

// BootstrapConfig holds the seed account created at first start
type BootstrapConfig struct {
	Username string
	Password string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// Config holds all configuration
type Config struct {
	DB        DBConfig
	Server    ServerConfig
	Session   SessionConfig
	Captcha   CaptchaConfig
	Upload    UploadConfig
	Wizard    WizardConfig
	Bootstrap BootstrapConfig
	Log       LogConfig
	Metrics   MetricsConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		DB: DBConfig{
			URL:             getEnv("DATABASE_URL", ""),
			SQLitePath:      getEnv("SQLITE_PATH", "registry.db"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Session: SessionConfig{
			SigningKey: getEnv("SESSION_SIGNING_KEY", "registrysessionsecret"),
			TTLHours:   getEnvAsInt("SESSION_TTL_HOURS", 12),
		},
		Captcha: CaptchaConfig{
			Secret:    getEnv("CAPTCHA_SECRET", ""),
			VerifyURL: getEnv("CAPTCHA_VERIFY_URL", "https://api.friendlycaptcha.com/api/v1/siteverify"),
			Timeout:   getEnvAsDuration("CAPTCHA_TIMEOUT", 5*time.Second),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "uploads"),
			MaxSize: getEnv("MAX_UPLOAD_SIZE", "16M"),
		},
		Wizard: WizardConfig{
			SlotTTL: getEnvAsDuration("WIZARD_SLOT_TTL", 30*time.Minute),
		},
		Bootstrap: BootstrapConfig{
			Username: getEnv("BOOTSTRAP_USERNAME", "admin"),
			Password: getEnv("BOOTSTRAP_PASSWORD", "admin123"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "registry"),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("server_port", c.Server.Port),
		zap.Bool("postgres", c.DB.URL != ""),
		zap.String("upload_dir", c.Upload.Dir),
		zap.Duration("wizard_slot_ttl", c.Wizard.SlotTTL),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
