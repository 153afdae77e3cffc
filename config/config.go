package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the registration wizard.
type Config struct {
	Environment string

	// Inscriptions backend.
	APIBaseURL string
	APIToken   string

	// Optional shared draft storage. Empty DBUrl means the file store is used.
	DBUrl     string
	StatePath string

	// Receipts are written here after a paid order.
	ReceiptDir string

	// Payment status polling.
	PollInterval time.Duration

	// Viewer token verification (admin payment methods).
	JWTSecret string

	// Treasury notification email.
	MailProvider       string
	MailFromAddress    string
	MailFromName       string
	NotifyAddress      string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
	SESInsecureTLS     bool
}

// Load reads configuration from environment variables, loading a .env file
// first outside production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the .env file usually does not exist and system
	// environment variables are used instead.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		APIBaseURL:         os.Getenv("INSCRICOES_API_URL"),
		APIToken:           os.Getenv("INSCRICOES_API_TOKEN"),
		DBUrl:              os.Getenv("DATABASE_URL"),
		StatePath:          os.Getenv("STATE_PATH"),
		ReceiptDir:         os.Getenv("RECEIPT_DIR"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		MailProvider:       os.Getenv("MAIL_PROVIDER"),
		MailFromAddress:    os.Getenv("MAIL_FROM_ADDRESS"),
		MailFromName:       os.Getenv("MAIL_FROM_NAME"),
		NotifyAddress:      os.Getenv("NOTIFY_ADDRESS"),
		SESRegion:          os.Getenv("SES_REGION"),
		SESAccessKeyID:     os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretAccessKey: os.Getenv("SES_SECRET_ACCESS_KEY"),
		SESInsecureTLS:     os.Getenv("SES_INSECURE_TLS") == "true",
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080"
	}
	if cfg.StatePath == "" {
		cfg.StatePath = "data/inscricaoflow.json"
	}
	if cfg.ReceiptDir == "" {
		cfg.ReceiptDir = "data/recibos"
	}
	if cfg.MailProvider == "" {
		cfg.MailProvider = "noop"
	}

	cfg.PollInterval = 5 * time.Second
	if s := os.Getenv("POLL_INTERVAL"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			log.Printf("Warning: invalid POLL_INTERVAL %q, using default: %v", s, err)
		} else {
			cfg.PollInterval = d
		}
	}

	return cfg, nil
}
