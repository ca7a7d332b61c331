// Package config loads the portfolio server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	// .env is loaded before any lookup happens.
	_ "github.com/joho/godotenv/autoload"
)

// Contact delivery modes.
const (
	ContactSimulated = "simulate"
	ContactSMTP      = "smtp"
)

// Config holds every runtime setting. Values come from environment
// variables (optionally via a .env file) with the defaults below.
type Config struct {
	Port     string `env:"PORT"      envDefault:"8080"`
	GinMode  string `env:"GIN_MODE"  envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBPath string `env:"DB_PATH" envDefault:"portfolio.db"`

	// ContentPath overrides the embedded content document when set.
	ContentPath  string `env:"CONTENT_PATH"`
	ContentWatch bool   `env:"CONTENT_WATCH" envDefault:"false"`

	Contact ContactConfig
	Admin   AdminConfig

	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL"    envDefault:"24h"`
}

// ContactConfig controls how the contact form delivers a transmission.
type ContactConfig struct {
	Mode  string        `env:"CONTACT_MODE"  envDefault:"simulate"`
	Delay time.Duration `env:"CONTACT_DELAY" envDefault:"1500ms"`

	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	ToEmail  string `env:"TO_EMAIL"`
}

// AdminConfig holds the dashboard credentials.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot run with.
func (c Config) Validate() error {
	switch c.Contact.Mode {
	case ContactSimulated:
	case ContactSMTP:
		if c.Contact.SMTPUser == "" || c.Contact.SMTPPass == "" {
			return fmt.Errorf("contact mode %q requires SMTP_USER and SMTP_PASS", c.Contact.Mode)
		}
		if c.Contact.ToEmail == "" {
			return fmt.Errorf("contact mode %q requires TO_EMAIL", c.Contact.Mode)
		}
	default:
		return fmt.Errorf("unknown contact mode %q", c.Contact.Mode)
	}
	if c.ContentWatch && c.ContentPath == "" {
		return fmt.Errorf("CONTENT_WATCH requires CONTENT_PATH")
	}
	if c.Contact.Delay < 0 {
		return fmt.Errorf("contact delay must not be negative")
	}
	if c.VisitorRetention <= 0 {
		return fmt.Errorf("visitor retention must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}
	return nil
}

// UsingDefaultAdmin reports whether the dashboard still uses the
// development credentials.
func (c Config) UsingDefaultAdmin() bool {
	return c.Admin.Username == "admin" || c.Admin.Password == "admin123"
}
