// Package config loads Hourbook settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file in the working directory. Every variable has a default that
// matches the file names the desktop program always used, so an empty
// environment keeps working against existing data.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config holds every runtime setting.
type Config struct {
	// Backend selects the table storage: csv or sqlite.
	Backend string `validate:"oneof=csv sqlite"`
	// DataFile is the CSV backing file.
	DataFile string `validate:"required_if=Backend csv"`
	// DBPath is the SQLite database file.
	DBPath string `validate:"required_if=Backend sqlite"`
	// MirrorConfigFile is the JSON side file naming the mirrored workbook.
	MirrorConfigFile string `validate:"required"`
	// PasswordFile holds the admin password hash.
	PasswordFile string `validate:"required"`
	// AdminPassword seeds PasswordFile when it does not exist yet.
	AdminPassword string `validate:"omitempty,min=8"`

	// Addr is the listen address for `hourbook serve`.
	Addr string `validate:"required"`
	// JWTSecret signs admin tokens. Random per process when unset.
	JWTSecret string `validate:"required,min=16"`
	// TokenTTL is how long an admin token stays valid.
	TokenTTL time.Duration `validate:"gt=0"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads .env (if present) and the environment into a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without reading .env.
func FromEnv() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("HOURBOOK_TOKEN_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOURBOOK_TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Backend:          strings.ToLower(getEnv("HOURBOOK_BACKEND", BackendCSV)),
		DataFile:         getEnv("HOURBOOK_DATA_FILE", "personal_data.csv"),
		DBPath:           getEnv("HOURBOOK_DB_PATH", "./data/hourbook.db"),
		MirrorConfigFile: getEnv("HOURBOOK_MIRROR_CONFIG", "excel_config.json"),
		PasswordFile:     getEnv("HOURBOOK_PASSWORD_FILE", "admin_password.txt"),
		AdminPassword:    os.Getenv("HOURBOOK_ADMIN_PASSWORD"),
		Addr:             getEnv("HOURBOOK_ADDR", ":8080"),
		JWTSecret:        os.Getenv("HOURBOOK_JWT_SECRET"),
		TokenTTL:         ttl,
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		slog.Debug("HOURBOOK_JWT_SECRET not set; admin tokens will not survive a restart")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags on Config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
