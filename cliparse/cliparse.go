package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultPort        = 8443
	DefaultSQLiteURL   = "file:badger-vote.db"
	DefaultWebhookPath = "/telegram/webhook"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	BotToken      string
	WebhookURL    string
	WebhookSecret string
	WebhookSalt   string
	Admins        string
	Debug         bool
}

// RegisterFlags binds the config fields to fs
func (cfg *Config) RegisterFlags(fs *pflag.FlagSet) {
	// Network config (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.WebhookURL, "webhook-url", "", "Public URL Telegram posts updates to")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BotToken, "token", "", "Telegram bot token (prefer env)")
	fs.StringVar(&cfg.WebhookSecret, "webhook-secret", "", "Webhook secret token (prefer env)")
	fs.StringVar(&cfg.WebhookSalt, "webhook-salt", "", "Salt for deriving the webhook secret (prefer env)")

	fs.StringVar(&cfg.Admins, "admins", "", "Administrator user ids and @usernames, comma separated")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
}

// ApplyEnv fills unset fields from environment variables and validates
func (cfg *Config) ApplyEnv() error {
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	if cfg.WebhookURL == "" {
		cfg.WebhookURL = os.Getenv("WEBHOOK_URL")
	}
	if cfg.Admins == "" {
		cfg.Admins = os.Getenv("ADMINS")
	}
	if !cfg.Debug {
		if v := os.Getenv("DEBUG"); v != "" {
			debug, err := strconv.ParseBool(v)
			if err != nil {
				return errors.New("invalid DEBUG env variable")
			}
			cfg.Debug = debug
		}
	}

	// Secrets
	if cfg.BotToken == "" {
		cfg.BotToken = os.Getenv("TG_TOKEN")
	}
	if cfg.WebhookSecret == "" {
		cfg.WebhookSecret = os.Getenv("WEBHOOK_SECRET")
	}
	if cfg.WebhookSalt == "" {
		cfg.WebhookSalt = os.Getenv("WEBHOOK_SALT")
	}

	return nil
}

// RequireToken fails when no bot token is configured
func (cfg Config) RequireToken() error {
	if cfg.BotToken == "" {
		return errors.New("TG_TOKEN required")
	}
	return nil
}

// LoadDotEnv loads variables from .env files without overriding the
// environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}
