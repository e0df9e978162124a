package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environments and their root API URLs.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

var rootURLs = map[string]string{
	EnvDevelopment: "http://localhost:3000/api",
	EnvStaging:     "https://staging-api.fibron.com/api",
	EnvProduction:  "https://api.fibron.com/api",
}

// mobilePrefix is appended to the root URL to build the mobile API base.
const mobilePrefix = "/mobile"

// Config holds all client configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// API endpoints. Empty values are derived from Env.
	RootURL string `env:"API_ROOT_URL"`
	BaseURL string `env:"API_BASE_URL"`

	// HTTP client
	Timeout        time.Duration `env:"API_TIMEOUT" env-default:"30s"`
	CircuitBreaker bool          `env:"CIRCUIT_BREAKER" env-default:"true"`

	// Token store
	StorageNamespace string `env:"STORAGE_NAMESPACE" env-default:"@DigTecnico"`
	TokenStore       string `env:"TOKEN_STORE" env-default:"file"` // memory | file | redis
	TokenStorePath   string `env:"TOKEN_STORE_PATH" env-default:".digtecnico/session.json"`
	RedisURL         string `env:"REDIS_URL" env-default:"redis://localhost:6379/0"`

	// Observability
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	Mock MockConfig
}

// MockConfig configures the development mock backend.
type MockConfig struct {
	Port       int           `env:"MOCK_PORT" env-default:"3000"`
	JWTSecret  string        `env:"MOCK_JWT_SECRET" env-default:"digtecnico-dev-secret-change-me"`
	LoginShape string        `env:"MOCK_LOGIN_SHAPE" env-default:"camel"` // camel | snake | filial
	AccessTTL  time.Duration `env:"MOCK_ACCESS_TTL" env-default:"15m"`
	RefreshTTL time.Duration `env:"MOCK_REFRESH_TTL" env-default:"168h"`
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment take precedence over the file.
func Load(dotenvPaths ...string) (*Config, error) {
	if len(dotenvPaths) == 0 {
		dotenvPaths = []string{".env"}
	}
	for _, p := range dotenvPaths {
		// missing file is fine
		_ = godotenv.Load(p)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolve fills the derived base URLs and validates enum-like values.
func (c *Config) resolve() error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.RootURL == "" {
		root, ok := rootURLs[c.Env]
		if !ok {
			return fmt.Errorf("invalid APP_ENV: %q (must be development, staging or production)", c.Env)
		}
		c.RootURL = root
	}
	c.RootURL = strings.TrimRight(c.RootURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = c.RootURL + mobilePrefix
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	switch c.TokenStore {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("invalid TOKEN_STORE: %q (must be memory, file or redis)", c.TokenStore)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return nil
}
