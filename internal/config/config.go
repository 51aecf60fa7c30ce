// Package config loads server and CLI settings.
//
// Values come, in increasing precedence, from Default(), an optional TOML
// file, a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/mmynk/roomledger/internal/money"
	"github.com/mmynk/roomledger/pkg/logging"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Report   ReportConfig   `toml:"report"`
}

type ServerConfig struct {
	Port       int    `toml:"port"`
	CORSOrigin string `toml:"cors_origin"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ReportConfig struct {
	// DefaultCurrency applies to rooms that have no currency of their own.
	DefaultCurrency string `toml:"default_currency"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:   ServerConfig{Port: 8080, CORSOrigin: "*"},
		Database: DatabaseConfig{Path: "./data/roomledger.db"},
		Log:      LogConfig{Level: "info"},
		Report:   ReportConfig{DefaultCurrency: "VND"},
	}
}

// Load reads path (skipped when empty) and ./.env, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	return LoadFiles(path, ".env")
}

// LoadFiles is Load with an explicit dotenv file. A missing dotenv file is
// not an error; a missing TOML file is.
func LoadFiles(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT '%s': must be a number", v)
		}
		c.Server.Port = port
	}
	c.Server.CORSOrigin = getEnv("CORS_ORIGIN", c.Server.CORSOrigin)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Report.DefaultCurrency = getEnv("DEFAULT_CURRENCY", c.Report.DefaultCurrency)
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}
	if c.Server.CORSOrigin == "" {
		problems = append(problems, "CORS origin cannot be empty")
	}
	if c.Database.Path == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := money.LookupCurrency(c.Report.DefaultCurrency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid default currency: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Currency returns the validated default currency.
func (c *Config) Currency() money.Currency {
	cur, err := money.LookupCurrency(c.Report.DefaultCurrency)
	if err != nil {
		return money.VND
	}
	return cur
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
