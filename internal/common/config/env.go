package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	// Environment and AWS info
	Environment string
	AWSRegion   string

	// HTTP listen address for the standalone server
	HTTPAddr string

	// Session configuration
	SessionSigningKey []byte
	SessionTTL        time.Duration

	// Admin passphrase, or the Secrets Manager secret that holds it
	Passphrase string
	SecretID   string

	// Default administrator profile name
	AuthorityName string

	// Draft assist configuration
	GeminiAPIKey      string
	GeminiModel       string
	DraftTimeout      time.Duration
	DraftDiscardStale bool

	SeedDemoData    bool
	ConfirmationTTL time.Duration

	// Lambda detection flag (cached)
	isLambda bool
}

// Defaults
const (
	DefaultHTTPAddr        = ":8080"
	DefaultAuthorityName   = "Pak RT Ahmad Dul Malik"
	DefaultGeminiModel     = "gemini-3-flash-preview"
	DefaultDraftTimeout    = 30 * time.Second
	DefaultSessionTTL      = 12 * time.Hour
	DefaultConfirmationTTL = 5 * time.Minute
)

// LoadFromEnv loads the configuration from environment variables.
// A .env file in the working directory is read first when present.
func LoadFromEnv() (*Config, error) {
	// Missing .env is fine, real environment wins
	_ = godotenv.Load()

	cfg := &Config{}

	// Required environment variables
	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		return nil, errors.New("SESSION_SIGNING_KEY environment variable is required")
	}
	cfg.SessionSigningKey = []byte(signingKey)

	cfg.Passphrase = os.Getenv("RT_PASSPHRASE")
	cfg.SecretID = os.Getenv("RT_SECRET_ID")
	if cfg.Passphrase == "" && cfg.SecretID == "" {
		return nil, errors.New("RT_PASSPHRASE or RT_SECRET_ID environment variable is required")
	}

	// Environment and region info
	cfg.Environment = getEnv("ENVIRONMENT", "dev")
	cfg.AWSRegion = getEnv("AWS_REGION", "ap-southeast-3")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", DefaultHTTPAddr)
	cfg.AuthorityName = getEnv("AUTHORITY_NAME", DefaultAuthorityName)

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnv("GEMINI_MODEL", DefaultGeminiModel)

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", DefaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.DraftTimeout, err = getDuration("DRAFT_TIMEOUT", DefaultDraftTimeout); err != nil {
		return nil, err
	}
	if cfg.ConfirmationTTL, err = getDuration("CONFIRMATION_TTL", DefaultConfirmationTTL); err != nil {
		return nil, err
	}
	if cfg.DraftDiscardStale, err = getBool("DRAFT_DISCARD_STALE", false); err != nil {
		return nil, err
	}
	if cfg.SeedDemoData, err = getBool("SEED_DEMO_DATA", !cfg.IsProd()); err != nil {
		return nil, err
	}

	// Check if running in Lambda
	cfg.isLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	return cfg, nil
}

// ApplySecret fills the passphrase and API key from the stored secret.
// Values set directly in the environment are kept.
func (c *Config) ApplySecret(passphrase, geminiAPIKey string) {
	if c.Passphrase == "" {
		c.Passphrase = passphrase
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = geminiAPIKey
	}
}

func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// IsLambda returns true if the application is running in AWS Lambda
func (c *Config) IsLambda() bool {
	return c.isLambda
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
