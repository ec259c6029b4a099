package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for netly-server
type Config struct {
	Service  ServiceConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Telegram TelegramConfig
	Bot      BotConfig
	Kafka    KafkaConfig
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name            string
	Port            string
	ShutdownTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AuthConfig holds token and password hashing settings.
// A zero TokenTTL issues tokens without expiry.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// TelegramConfig holds Telegram MTProto configuration
type TelegramConfig struct {
	APIID          int
	APIHash        string
	RequestTimeout time.Duration
	RateLimit      int
	DialogPageSize int
}

// BotConfig holds Bot API configuration. Token may be empty.
type BotConfig struct {
	Token     string
	ServerURL string
}

// KafkaConfig holds Kafka configuration for channel audit events
type KafkaConfig struct {
	Enabled            bool
	Brokers            []string
	TopicChannelEvents string
}

// Result is fx.Out struct for providing config dependencies
type Result struct {
	fx.Out

	Config         *Config
	ServiceConfig  *ServiceConfig
	LoggingConfig  *LoggingConfig
	DatabaseConfig *DatabaseConfig
	AuthConfig     *AuthConfig
	TelegramConfig *TelegramConfig
	BotConfig      *BotConfig
	KafkaConfig    *KafkaConfig
}

// Out returns fx-compatible config result
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:         cfg,
		ServiceConfig:  &cfg.Service,
		LoggingConfig:  &cfg.Logging,
		DatabaseConfig: &cfg.Database,
		AuthConfig:     &cfg.Auth,
		TelegramConfig: &cfg.Telegram,
		BotConfig:      &cfg.Bot,
		KafkaConfig:    &cfg.Kafka,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiID, err := strconv.Atoi(getEnv("TELEGRAM_API_ID", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_API_ID: %w", err)
	}

	cfg := &Config{
		Service: ServiceConfig{
			Name:            getEnv("SERVICE_NAME", "netly-server"),
			Port:            getEnv("SERVICE_PORT", "8080"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DATABASE_HOST", "localhost"),
			Port:           getEnv("DATABASE_PORT", "5432"),
			User:           getEnv("DATABASE_USER", "netly"),
			Password:       getEnv("DATABASE_PASSWORD", "netly"),
			DBName:         getEnv("DATABASE_NAME", "netly"),
			SSLMode:        getEnv("DATABASE_SSLMODE", "disable"),
			MigrationsPath: getEnv("DATABASE_MIGRATIONS", "file://migrations"),

			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   getEnvDuration("JWT_TTL", 0),
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
		Telegram: TelegramConfig{
			APIID:          apiID,
			APIHash:        getEnv("TELEGRAM_API_HASH", ""),
			RequestTimeout: getEnvDuration("TELEGRAM_REQUEST_TIMEOUT", 60*time.Second),
			RateLimit:      getEnvInt("TELEGRAM_RATE_LIMIT", 10),
			DialogPageSize: getEnvInt("TELEGRAM_DIALOG_PAGE_SIZE", 100),
		},
		Bot: BotConfig{
			Token:     getEnv("BOT_TOKEN", ""),
			ServerURL: getEnv("BOT_API_URL", ""),
		},
		Kafka: KafkaConfig{
			Enabled:            getEnvBool("KAFKA_ENABLED", false),
			Brokers:            splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			TopicChannelEvents: getEnv("KAFKA_TOPIC_CHANNEL_EVENTS", "telegram.channel.events"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DATABASE_HOST is required")
	}

	if c.Database.User == "" {
		return fmt.Errorf("DATABASE_USER is required")
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("LOG_FORMAT must be console or json")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	if c.Telegram.APIID == 0 {
		return fmt.Errorf("TELEGRAM_API_ID is required")
	}

	if c.Telegram.APIHash == "" {
		return fmt.Errorf("TELEGRAM_API_HASH is required")
	}

	if c.Telegram.RateLimit <= 0 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT must be positive")
	}

	if c.Telegram.DialogPageSize <= 0 || c.Telegram.DialogPageSize > 100 {
		return fmt.Errorf("TELEGRAM_DIALOG_PAGE_SIZE must be between 1 and 100")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration gets environment variable as duration with default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
