package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Content  ContentConfig  `yaml:"content"`
	LLM      LLMConfig      `yaml:"llm"`
	Chat     ChatConfig     `yaml:"chat"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings. WriteTimeout is generous
// because the chat endpoint streams SSE frames for the whole response.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
	MigrationsDir   string        `yaml:"migrations_dir"     env:"DATABASE_MIGRATIONS_DIR"     env-default:"migrations"`
}

// ContentConfig holds upstream translation-helps API settings.
// DefaultLanguage and DefaultOrganization are the fallback scope when a
// localized fetch returns nothing.
type ContentConfig struct {
	BaseURL             string        `yaml:"base_url"             env:"CONTENT_BASE_URL"             env-required:"true"`
	Timeout             time.Duration `yaml:"timeout"              env:"CONTENT_TIMEOUT"              env-default:"15s"`
	DefaultLanguage     string        `yaml:"default_language"     env:"CONTENT_DEFAULT_LANGUAGE"     env-default:"en"`
	DefaultOrganization string        `yaml:"default_organization" env:"CONTENT_DEFAULT_ORGANIZATION" env-default:"unfoldingWord"`
	DefaultResource     string        `yaml:"default_resource"     env:"CONTENT_DEFAULT_RESOURCE"     env-default:"ult"`
}

// LLMConfig holds Anthropic API settings. ClassifyModel is used for the
// single-token intent classification call; Model for everything else.
type LLMConfig struct {
	APIKey        string `yaml:"api_key"        env:"LLM_API_KEY"        env-required:"true"`
	Model         string `yaml:"model"          env:"LLM_MODEL"          env-default:"claude-sonnet-4-5"`
	ClassifyModel string `yaml:"classify_model" env:"LLM_CLASSIFY_MODEL" env-default:"claude-3-5-haiku-latest"`
	MaxTokens     int    `yaml:"max_tokens"     env:"LLM_MAX_TOKENS"     env-default:"2048"`
}

// ChatConfig holds limits for the chat and notes surface.
type ChatConfig struct {
	MaxMessageLength int `yaml:"max_message_length" env:"CHAT_MAX_MESSAGE_LENGTH" env-default:"4000"`
	MaxHistoryTurns  int `yaml:"max_history_turns"  env:"CHAT_MAX_HISTORY_TURNS"  env-default:"20"`
	MaxNotesPerUser  int `yaml:"max_notes_per_user" env:"CHAT_MAX_NOTES"          env-default:"1000"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Device-Id,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
