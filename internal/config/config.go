package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	AMQP     AMQPConfig
	API      APIConfig
	Log      LogConfig
	Page     PageConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MigrateOnStart bool
}

// AMQPConfig holds RabbitMQ settings. Publishing to RabbitMQ is skipped
// when URL is empty.
type AMQPConfig struct {
	URL   string
	Queue string
}

// APIConfig is where the console finds the customer API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// PageConfig tunes the customer page.
type PageConfig struct {
	SuccessNotification time.Duration
	FailureNotification time.Duration
	ResetDraftOnOpen    bool
	SeverityFromOutcome bool
}

// DSN returns the lib/pq connection URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// Load loads configuration from .env, config file and environment.
// Priority (highest to lowest):
// 1. Environment variables with CUSTOMERS_ prefix (e.g. CUSTOMERS_DATABASE_PASSWORD)
// 2. Legacy DB_* variables
// 3. config.toml (or the file passed in path)
// 4. Built-in defaults
func Load(path string) (*Config, error) {
	// .env is optional; missing file means we rely on the OS environment
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CUSTOMERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("database.host", "CUSTOMERS_DATABASE_HOST", "DB_HOST")
	_ = v.BindEnv("database.port", "CUSTOMERS_DATABASE_PORT", "DB_PORT")
	_ = v.BindEnv("database.user", "CUSTOMERS_DATABASE_USER", "DB_USER")
	_ = v.BindEnv("database.password", "CUSTOMERS_DATABASE_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("database.dbname", "CUSTOMERS_DATABASE_DBNAME", "DB_NAME")

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("database.host"),
			Port:           v.GetInt("database.port"),
			User:           v.GetString("database.user"),
			Password:       v.GetString("database.password"),
			DBName:         v.GetString("database.dbname"),
			SSLMode:        v.GetString("database.sslmode"),
			MaxOpenConns:   v.GetInt("database.max_open_conns"),
			MaxIdleConns:   v.GetInt("database.max_idle_conns"),
			MigrateOnStart: v.GetBool("database.migrate_on_start"),
		},
		AMQP: AMQPConfig{
			URL:   v.GetString("amqp.url"),
			Queue: v.GetString("amqp.queue"),
		},
		API: APIConfig{
			BaseURL: v.GetString("api.base_url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Page: PageConfig{
			SuccessNotification: v.GetDuration("page.success_notification"),
			FailureNotification: v.GetDuration("page.failure_notification"),
			ResetDraftOnOpen:    v.GetBool("page.reset_draft_on_open"),
			SeverityFromOutcome: v.GetBool("page.severity_from_outcome"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "customer-admin"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8000"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "customers"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.AMQP.Queue == "" {
		cfg.AMQP.Queue = "customer_events"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://127.0.0.1:8000"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Page.SuccessNotification == 0 {
		cfg.Page.SuccessNotification = 1200 * time.Millisecond
	}
	if cfg.Page.FailureNotification == 0 {
		cfg.Page.FailureNotification = 1900 * time.Millisecond
	}
}

func (c *Config) validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log.format %q (use json or console)", c.Log.Format)
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
