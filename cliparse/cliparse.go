package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	JWTSecret      string
	RedisURL       string
	FeedChannel    string
	EnvFile        string
	AdminPhone     string
	AdminName      string
	MintToken      string
	// Origins allowed to call the API from a browser; "*" allows any
	AllowedOrigins []string
}

const (
	DefaultPort        = 3318
	DefaultFeedChannel = "propbowl:changes"
	DefaultCORSOrigins = "http://localhost:5173"
)

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("propbowl", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for the change feed (optional)")
	fs.StringVar(&cfg.FeedChannel, "feed-channel", "", "Change feed channel prefix")
	var origins string
	fs.StringVar(&origins, "cors-origins", "", "Comma-separated browser origins allowed by CORS")
	fs.StringVar(&cfg.EnvFile, "env-file", ".env", "Dotenv file to load (missing file is ignored)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Bearer token signing secret (prefer env)")

	// Bootstrap
	fs.StringVar(&cfg.AdminPhone, "admin-phone", "", "Ensure an admin profile exists for this phone")
	fs.StringVar(&cfg.AdminName, "admin-name", "", "Display name for the bootstrap admin")
	fs.StringVar(&cfg.MintToken, "mint-token", "", "Print a bearer token for the profile with this phone and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
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
			cfg.Port = DefaultPort
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
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
	if cfg.FeedChannel == "" {
		cfg.FeedChannel = os.Getenv("FEED_CHANNEL")
		if cfg.FeedChannel == "" {
			cfg.FeedChannel = DefaultFeedChannel
		}
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
		if origins == "" {
			origins = DefaultCORSOrigins
		}
	}
	cfg.AllowedOrigins = splitList(origins)

	if cfg.AdminPhone == "" {
		cfg.AdminPhone = os.Getenv("ADMIN_PHONE")
	}
	if cfg.AdminName == "" {
		cfg.AdminName = os.Getenv("ADMIN_NAME")
		if cfg.AdminName == "" {
			cfg.AdminName = "Admin"
		}
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// loadEnvFile loads path without overriding variables already set.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
