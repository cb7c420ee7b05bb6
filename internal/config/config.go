package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me"

// Chat context modes.
const (
	ChatModeSingle  = "single"
	ChatModeContext = "context"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	SwaggerHost string

	GoogleClientID string

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string
	EmailCodeTTL   time.Duration

	AIBaseURL       string
	AIAPIKey        string
	AIModel         string
	AITimeout       time.Duration
	ChatContextMode string

	AMQPURL        string
	EventsExchange string

	LogLevel  string
	LogFormat string
}

// AuthConfig is the subset of Config the auth service needs.
type AuthConfig struct {
	CodeTTL        time.Duration
	ResendCooldown time.Duration
}

// ChatConfig is the subset of Config the chat service needs.
type ChatConfig struct {
	Mode string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN: getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/mira?charset=utf8mb4&parseTime=True&loc=Local"),
		ResetDB:     getEnvBool("RESET_DB", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:       getEnv("JWT_SECRET", defaultJWTSecret),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getEnv("MAIL_FROM", "no-reply@mira.local"),
		MailFromName:   getEnv("MAIL_FROM_NAME", "Mira"),
		EmailCodeTTL:   getEnvDuration("EMAIL_CODE_TTL", 10*time.Minute),

		AIBaseURL:       getEnv("AI_BASE_URL", "https://api.deepseek.com"),
		AIAPIKey:        os.Getenv("AI_API_KEY"),
		AIModel:         getEnv("AI_MODEL", "deepseek-chat"),
		AITimeout:       getEnvDuration("AI_TIMEOUT", 60*time.Second),
		ChatContextMode: getEnv("CHAT_CONTEXT_MODE", ChatModeSingle),

		AMQPURL:        os.Getenv("AMQP_URL"),
		EventsExchange: getEnv("EVENTS_EXCHANGE", "mira.events"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Warnings lists settings that fall back to unsafe or unintended values.
func (c *Config) Warnings() []string {
	var out []string
	if c.JWTSecret == defaultJWTSecret {
		out = append(out, "JWT_SECRET not set, tokens are signed with the built-in development secret")
	}
	switch c.ChatContextMode {
	case ChatModeSingle, ChatModeContext:
	default:
		out = append(out, fmt.Sprintf("CHAT_CONTEXT_MODE %q not recognized, using %q", c.ChatContextMode, ChatModeSingle))
	}
	return out
}

// Auth returns the auth service settings.
func (c *Config) Auth() AuthConfig {
	return AuthConfig{
		CodeTTL:        c.EmailCodeTTL,
		ResendCooldown: 60 * time.Second,
	}
}

// Chat returns the chat service settings.
func (c *Config) Chat() ChatConfig {
	return ChatConfig{Mode: c.ChatContextMode}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
