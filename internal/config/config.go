// Package config loads the service configuration from the environment.
// Values are read once at startup; Load fails fast on anything missing or malformed.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// StoreKind selects the Integration Record Store backend
type StoreKind string

const (
	StorePostgres StoreKind = "postgres"
	StoreSQLite   StoreKind = "sqlite"
)

// LogFormat selects the slog handler
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// DBPool holds connection pool settings for PostgreSQL
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Google holds the OAuth client registration for the calendar integration
type Google struct {
	ClientID     string
	ClientSecret string

	// RedirectURL defaults to the callback route under AppURL.
	RedirectURL string
}

// Telegram holds the bot credentials for the messaging integration
type Telegram struct {
	BotToken string

	// SendRate caps outbound messages per second.
	SendRate int
}

// Config is the fully validated service configuration
type Config struct {
	Port   int
	AppURL string

	DatabaseURL string
	Store       StoreKind
	// SQLiteDSN is the driver DSN derived from DatabaseURL when Store is StoreSQLite.
	SQLiteDSN string
	DB        DBPool

	RedisURL string

	AuthJWTSecret    string
	EncryptionSecret string

	Google   Google
	Telegram Telegram

	OAuthStateSingleUse      bool
	ChannelVerifyMaxAttempts int
	ChannelVerifyWindow      time.Duration
	HTTPClientTimeout        time.Duration

	LogLevel           slog.Level
	LogFormat          LogFormat
	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

// GoogleEnabled reports whether the calendar integration is configured
func (c *Config) GoogleEnabled() bool {
	return c.Google.ClientID != "" && c.Google.ClientSecret != ""
}

// TelegramEnabled reports whether the messaging integration is configured
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}

// Load seeds the environment from a .env file when one exists and parses it.
// Variables already set in the process environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup parses configuration from an environment lookup function.
// Every problem is reported, not just the first.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	e := &env{lookup: lookup}

	cfg := &Config{
		Port:        e.int("PORT", 8080),
		AppURL:      strings.TrimSuffix(e.required("APP_URL"), "/"),
		DatabaseURL: e.required("DATABASE_URL"),
		DB: DBPool{
			MaxOpenConns:    e.int("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    e.int("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(e.int("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(e.int("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		},
		RedisURL:         e.string("REDIS_URL", ""),
		AuthJWTSecret:    e.required("AUTH_JWT_SECRET"),
		EncryptionSecret: e.required("ENCRYPTION_SECRET"),
		Google: Google{
			ClientID:     e.string("GOOGLE_CLIENT_ID", ""),
			ClientSecret: e.string("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  e.string("GOOGLE_REDIRECT_URL", ""),
		},
		Telegram: Telegram{
			BotToken: e.string("TELEGRAM_BOT_TOKEN", ""),
			SendRate: e.int("TELEGRAM_SEND_RATE", 25),
		},
		OAuthStateSingleUse:      e.bool("OAUTH_STATE_SINGLE_USE", false),
		ChannelVerifyMaxAttempts: e.int("CHANNEL_VERIFY_MAX_ATTEMPTS", 5),
		ChannelVerifyWindow:      e.duration("CHANNEL_VERIFY_WINDOW", 15*time.Minute),
		HTTPClientTimeout:        e.duration("HTTP_CLIENT_TIMEOUT", 30*time.Second),
		LogLevel:                 e.level("LOG_LEVEL", slog.LevelInfo),
		LogFormat:                LogFormat(strings.ToLower(e.string("LOG_FORMAT", string(LogFormatJSON)))),
		CORSAllowedOrigins:       e.list("CORS_ALLOWED_ORIGINS"),
		MetricsEnabled:           e.bool("METRICS_ENABLED", true),
	}

	if cfg.DatabaseURL != "" {
		kind, dsn, err := parseDatabaseURL(cfg.DatabaseURL)
		if err != nil {
			e.fail(err)
		}
		cfg.Store, cfg.SQLiteDSN = kind, dsn
	}
	if cfg.AppURL != "" {
		if u, err := url.Parse(cfg.AppURL); err != nil || u.Scheme == "" || u.Host == "" {
			e.fail(errors.New("APP_URL must be an absolute URL"))
		}
	}

	// The Google group is all-or-nothing.
	if (cfg.Google.ClientID == "") != (cfg.Google.ClientSecret == "") {
		e.fail(errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set together"))
	}
	if cfg.GoogleEnabled() && cfg.Google.RedirectURL == "" && cfg.AppURL != "" {
		cfg.Google.RedirectURL = cfg.AppURL + "/api/auth/google/callback"
	}

	switch cfg.LogFormat {
	case LogFormatJSON, LogFormatText:
	default:
		e.fail(fmt.Errorf("LOG_FORMAT must be %q or %q", LogFormatJSON, LogFormatText))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		e.fail(errors.New("PORT must be between 1 and 65535"))
	}
	if cfg.ChannelVerifyMaxAttempts <= 0 {
		e.fail(errors.New("CHANNEL_VERIFY_MAX_ATTEMPTS must be positive"))
	}
	if cfg.ChannelVerifyWindow <= 0 {
		e.fail(errors.New("CHANNEL_VERIFY_WINDOW must be positive"))
	}

	if err := errors.Join(e.errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// parseDatabaseURL picks the store from the URL scheme.
// sqlite://path and file: URIs both map to the SQLite driver.
func parseDatabaseURL(raw string) (StoreKind, string, error) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return StorePostgres, "", nil
	case strings.HasPrefix(raw, "sqlite://"):
		dsn := strings.TrimPrefix(raw, "sqlite://")
		if dsn == "" {
			return "", "", errors.New("DATABASE_URL: sqlite path is empty")
		}
		return StoreSQLite, dsn, nil
	case strings.HasPrefix(raw, "file:"):
		return StoreSQLite, raw, nil
	}
	return "", "", errors.New("DATABASE_URL must use postgres://, sqlite:// or file:")
}

// env reads typed values and collects parse errors.
// Values are trimmed; an empty value counts as unset.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) fail(err error) {
	e.errs = append(e.errs, err)
}

func (e *env) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (e *env) string(key, defaultValue string) string {
	if v, ok := e.get(key); ok {
		return v
	}
	return defaultValue
}

func (e *env) required(key string) string {
	v, ok := e.get(key)
	if !ok {
		e.fail(fmt.Errorf("%s is required", key))
	}
	return v
}

func (e *env) int(key string, defaultValue int) int {
	v, ok := e.get(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(fmt.Errorf("%s must be an integer", key))
		return defaultValue
	}
	return n
}

func (e *env) bool(key string, defaultValue bool) bool {
	v, ok := e.get(key)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	e.fail(fmt.Errorf("%s must be a boolean", key))
	return defaultValue
}

func (e *env) duration(key string, defaultValue time.Duration) time.Duration {
	v, ok := e.get(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(fmt.Errorf("%s must be a duration such as 15m", key))
		return defaultValue
	}
	return d
}

func (e *env) level(key string, defaultValue slog.Level) slog.Level {
	v, ok := e.get(key)
	if !ok {
		return defaultValue
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		e.fail(fmt.Errorf("%s must be debug, info, warn or error", key))
		return defaultValue
	}
	return lvl
}

func (e *env) list(key string) []string {
	v, ok := e.get(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
