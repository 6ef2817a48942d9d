package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/sophie/internal/provider/gemini"
	"github.com/davidbz/sophie/internal/provider/mistral"
	"github.com/davidbz/sophie/internal/provider/openai"
	"github.com/davidbz/sophie/internal/provider/sim"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Chat    ChatConfig
	Ledger  LedgerConfig
	Session SessionConfig
	OpenAI  openai.Config
	Gemini  gemini.Config
	Mistral mistral.Config
	Sim     sim.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"120"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,X-User-Id"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// ChatConfig contains chat orchestration settings.
type ChatConfig struct {
	// ProviderTimeout is the vendor-call deadline in seconds; expiry is
	// reported as a provider failure, not a crash.
	ProviderTimeout int `env:"PROVIDER_TIMEOUT" envDefault:"60"`
}

// LedgerConfig names the flat append-only log files.
type LedgerConfig struct {
	UsagePath    string `env:"LEDGER_USAGE_PATH"    envDefault:"usage.csv"`
	FeedbackPath string `env:"LEDGER_FEEDBACK_PATH" envDefault:"feedback.csv"`
}

// SessionConfig controls session snapshot persistence. An empty RedisAddr
// keeps sessions in memory only.
type SessionConfig struct {
	RedisAddr     string `env:"SESSION_REDIS_ADDR"`
	RedisPassword string `env:"SESSION_REDIS_PASSWORD"`
	RedisDB       int    `env:"SESSION_REDIS_DB"         envDefault:"0"`
	SnapshotTTL   int    `env:"SESSION_SNAPSHOT_TTL"     envDefault:"0"` // seconds; 0 = no expiry
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server  *ServerConfig
	CORS    *CORSConfig
	Chat    *ChatConfig
	Ledger  *LedgerConfig
	Session *SessionConfig
	OpenAI  openai.Config
	Gemini  gemini.Config
	Mistral mistral.Config
	Sim     sim.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:  &cfg.Server,
		CORS:    &cfg.CORS,
		Chat:    &cfg.Chat,
		Ledger:  &cfg.Ledger,
		Session: &cfg.Session,
		OpenAI:  cfg.OpenAI,
		Gemini:  cfg.Gemini,
		Mistral: cfg.Mistral,
		Sim:     cfg.Sim,
	}
}
