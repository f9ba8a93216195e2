// Package config loads environment variables and provides a typed Config used across the service.
// It applies sensible defaults so the binary can run locally with minimal setup.
// For required IRC credentials, use ValidateChatReady; for the corporation
// scope, use ValidateCorporation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// DBConfig describes one Postgres store. A non-empty DSN wins over the
// discrete fields.
type DBConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	DSN      string
	MaxConns int
}

// ResolveDSN returns the DSN override or assembles one from the discrete fields.
func (d DBConfig) ResolveDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, d.Name)
}

type Config struct {
	// IRC
	IRCChannel     string
	IRCBotUsername string
	IRCOAuthToken  string
	CommandPrefix  string

	// Lookup scope
	Corporation string
	MaxLines    int

	// Stores: Spinner holds the mutable corporation data, SDE the static
	// universe reference data.
	SpinnerDB DBConfig
	SDEDB     DBConfig

	// Game status API
	EveAPIBaseURL string

	// Ops HTTP server
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail if
// IRC creds or the corporation name are missing; use the Validate helpers when
// you require them. Missing optional variables disable features.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.IRCChannel = os.Getenv("IRC_CHANNEL")
	cfg.IRCBotUsername = os.Getenv("IRC_BOT_USERNAME")
	cfg.IRCOAuthToken = os.Getenv("IRC_OAUTH_TOKEN")
	cfg.CommandPrefix = os.Getenv("COMMAND_PREFIX")
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}

	cfg.Corporation = os.Getenv("CORPORATION")
	cfg.MaxLines = 10
	if v := os.Getenv("MAX_LINES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid MAX_LINES %q: want positive integer", v)
		}
		cfg.MaxLines = n
	}

	var err error
	cfg.SpinnerDB, err = loadDB("SPINNER", "stationspinner")
	if err != nil {
		return nil, err
	}
	cfg.SDEDB, err = loadDB("SDE", "sde")
	if err != nil {
		return nil, err
	}

	cfg.EveAPIBaseURL = os.Getenv("EVEAPI_BASE_URL")
	if cfg.EveAPIBaseURL == "" {
		cfg.EveAPIBaseURL = "https://api.eveonline.com"
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

func loadDB(prefix, defaultName string) (DBConfig, error) {
	d := DBConfig{
		Host:     envDefault(prefix+"_DB_HOST", "localhost"),
		Name:     envDefault(prefix+"_DB_NAME", defaultName),
		User:     envDefault(prefix+"_DB_USER", "postgres"),
		Password: os.Getenv(prefix + "_DB_PASSWORD"),
		DSN:      os.Getenv(prefix + "_DB_DSN"),
		Port:     5432,
		MaxConns: 4,
	}
	if v := os.Getenv(prefix + "_DB_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 65535 {
			return DBConfig{}, fmt.Errorf("invalid %s_DB_PORT %q", prefix, v)
		}
		d.Port = p
	}
	if v := os.Getenv(prefix + "_DB_MAX_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return DBConfig{}, fmt.Errorf("invalid %s_DB_MAX_CONNS %q", prefix, v)
		}
		d.MaxConns = n
	}
	return d, nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ValidateChatReady checks required fields for connecting the IRC client.
func (c *Config) ValidateChatReady() error {
	if c.IRCChannel == "" || c.IRCBotUsername == "" || c.IRCOAuthToken == "" {
		return fmt.Errorf("missing irc env: require IRC_CHANNEL, IRC_BOT_USERNAME, IRC_OAUTH_TOKEN")
	}
	return nil
}

// ValidateCorporation checks the corporation scope required by owner-scoped commands.
func (c *Config) ValidateCorporation() error {
	if c.Corporation == "" {
		return fmt.Errorf("missing CORPORATION: owner-scoped commands need a corporation name")
	}
	return nil
}
