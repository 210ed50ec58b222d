package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	BotToken     string
	WebURL       string
	AdminIDs     []int64
	Debug        bool
}

// DriverName maps the configured database type to a database/sql driver.
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// IsAdmin reports whether the given user may call admin endpoints.
func (c Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ParseFlags validates flags, falling back to environment variables.
// A .env file in the working directory is loaded first, if present.
func ParseFlags(args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var adminIDs string

	fs := flag.NewFlagSet("dayfinder", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres) or file path (sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.WebURL, "web-url", "", "Public base URL used in share links")
	fs.StringVar(&adminIDs, "admin-ids", "", "Comma-separated Telegram user IDs for admin endpoints")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BotToken, "token", "", "Telegram bot token (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unknown database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.WebURL == "" {
		cfg.WebURL = os.Getenv("WEB_URL")
	}
	if cfg.WebURL == "" {
		return Config{}, errors.New("web URL required (use -web-url or WEB_URL env)")
	}
	cfg.WebURL = strings.TrimRight(cfg.WebURL, "/")

	// Secrets - MUST be provided
	if cfg.BotToken == "" {
		cfg.BotToken = os.Getenv("BOT_TOKEN")
	}
	if cfg.BotToken == "" {
		return Config{}, errors.New("BOT_TOKEN required")
	}

	if adminIDs == "" {
		adminIDs = os.Getenv("ADMIN_IDS")
	}
	if adminIDs != "" {
		for _, part := range strings.Split(adminIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return Config{}, fmt.Errorf("invalid admin ID %q", part)
			}
			cfg.AdminIDs = append(cfg.AdminIDs, id)
		}
	}

	return cfg, nil
}
