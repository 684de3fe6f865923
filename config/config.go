package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
)

// Config is built once at startup and passed explicitly to constructors.
type Config struct {
	Port           string
	ClientOrigin   string
	GinMode        string
	SwaggerEnabled bool
	Mail           MailConfig
}

// MailConfig holds everything the contact dispatcher and its transport need.
type MailConfig struct {
	// Account is the operator mailbox: sender of every message and recipient of the owner copy.
	Account       string
	Password      string // SMTP secret
	FromName      string
	Transport     string // "smtp" or "resend"
	VerifyOnSend  bool
	SendOwnerCopy bool
	// SMTP relay
	SMTPHost string
	SMTPPort int
	// Resend API
	ResendAPIKey string
}

// Secret returns the credential the selected transport authenticates with.
func (m MailConfig) Secret() string {
	if m.Transport == TransportResend {
		return m.ResendAPIKey
	}
	return m.Password
}

// IsConfigured reports whether both the operator account and the transport secret are set.
func (m MailConfig) IsConfigured() bool {
	return m.Account != "" && m.Secret() != ""
}

func LoadConfig() (*Config, error) {
	// .env is optional; production injects real env vars
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "3001"),
		ClientOrigin:   strings.TrimRight(getEnv("CLIENT_ORIGIN", "http://localhost:5173"), "/"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", false),
		Mail: MailConfig{
			Account:       strings.TrimSpace(getEnv("EMAIL_USER", "")),
			Password:      strings.TrimSpace(getEnv("EMAIL_PASS", "")),
			FromName:      getEnv("EMAIL_FROM_NAME", "Portfolio"),
			Transport:     strings.ToLower(strings.TrimSpace(getEnv("MAIL_TRANSPORT", TransportSMTP))),
			VerifyOnSend:  getEnvBool("MAIL_VERIFY", false),
			SendOwnerCopy: getEnvBool("SEND_OWNER_COPY", false),
			SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:      getEnvInt("SMTP_PORT", 465),
			ResendAPIKey:  strings.TrimSpace(getEnv("RESEND_API_KEY", "")),
		},
	}

	if cfg.Mail.Transport != TransportSMTP && cfg.Mail.Transport != TransportResend {
		log.Printf("WARNING: unknown MAIL_TRANSPORT %q, falling back to smtp", cfg.Mail.Transport)
		cfg.Mail.Transport = TransportSMTP
	}

	// Missing credentials are not fatal: the contact endpoint reports a configuration error instead
	if !cfg.Mail.IsConfigured() {
		log.Println("WARNING: mail credentials are missing. Contact form submissions will fail.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
	}
	return fallback
}
