// Package config handles loading and validating the application configuration
// from an optional YAML file, a local .env file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
)

// Mail backends.
const (
	MailBackendHTTP = "http"
	MailBackendSMTP = "smtp"
	MailBackendNoop = "noop"
)

// DefaultMailEndpoint is the mail-sending API the notifier posts to.
const DefaultMailEndpoint = "https://api.proemium.si/sendmail"

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Mail     MailConfig     `yaml:"mail"`
	Logging  LoggingConfig  `yaml:"logging"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines how the notifier reaches the data store holding
// favorites, profiles, and listings.
type DatabaseConfig struct {
	Driver     string `yaml:"driver"` // rest, postgres
	URL        string `yaml:"url"`
	ServiceKey string `yaml:"service_key"`
	PoolSize   int    `yaml:"pool_size"`
}

// AuthConfig defines inbound request authorization.
type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// MailConfig defines the outbound mail transport.
type MailConfig struct {
	Backend  string        `yaml:"backend"` // http, smtp, noop
	Endpoint string        `yaml:"endpoint"`
	Token    string        `yaml:"token"`
	Timeout  time.Duration `yaml:"timeout"` // 0 means no client timeout
	SMTP     SMTPConfig    `yaml:"smtp"`
}

// SMTPConfig defines SMTP settings used when the mail backend is smtp.
type SMTPConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	Encryption string `yaml:"encryption"` // none, starttls, ssl_tls
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text, json
	File       string `yaml:"file"`   // optional rotated log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// TracingConfig defines OpenTelemetry trace export.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// envOverrides maps the environment variables the service has always been
// deployed with onto config fields. Unset variables leave the field alone.
type envOverrides struct {
	SupabaseURL    string `envconfig:"SUPABASE_URL"`
	ServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`
	DatabaseDriver string `envconfig:"DATABASE_DRIVER"`
	APIKey         string `envconfig:"API_KEY"`
	MailAPIKey     string `envconfig:"MAIL_API_KEY"`
	MailBackend    string `envconfig:"MAIL_BACKEND"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
	Port           int    `envconfig:"PORT"`
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error. Variables already set are not overwritten.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load builds the configuration. When path is non-empty the YAML file is read
// with environment variable substitution; environment overrides are applied
// on top, then defaults and validation.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		// Expand environment variables in the YAML content.
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	setIfNotEmpty(&cfg.Database.URL, env.SupabaseURL)
	setIfNotEmpty(&cfg.Database.ServiceKey, env.ServiceRoleKey)
	setIfNotEmpty(&cfg.Database.Driver, env.DatabaseDriver)
	setIfNotEmpty(&cfg.Auth.APIKey, env.APIKey)
	setIfNotEmpty(&cfg.Mail.Token, env.MailAPIKey)
	setIfNotEmpty(&cfg.Mail.Backend, env.MailBackend)
	setIfNotEmpty(&cfg.Logging.Level, env.LogLevel)
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}

	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyMailDefaults(&cfg.Mail)
	applyLoggingDefaults(&cfg.Logging)
	applyTracingDefaults(&cfg.Tracing)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 5 * time.Minute
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = DriverREST
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyMailDefaults(m *MailConfig) {
	if m.Backend == "" {
		m.Backend = MailBackendHTTP
	}
	if m.Endpoint == "" {
		m.Endpoint = DefaultMailEndpoint
	}
	if m.SMTP.Port == 0 {
		m.SMTP.Port = 587
	}
	if m.SMTP.Encryption == "" {
		m.SMTP.Encryption = "starttls"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
	if l.MaxSizeMB == 0 {
		l.MaxSizeMB = 100
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = 3
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "price-alert-notifier"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.URL == "" {
		errs = append(errs, fmt.Errorf("database.url (SUPABASE_URL) is required"))
	}
	if cfg.Database.ServiceKey == "" {
		errs = append(
			errs,
			fmt.Errorf("database.service_key (SUPABASE_SERVICE_ROLE_KEY) is required"),
		)
	}
	switch cfg.Database.Driver {
	case DriverREST, DriverPostgres:
	default:
		errs = append(
			errs,
			fmt.Errorf("database.driver must be one of: rest, postgres (got %q)", cfg.Database.Driver),
		)
	}

	if cfg.Auth.APIKey == "" {
		errs = append(errs, fmt.Errorf("auth.api_key (API_KEY) is required"))
	}

	switch cfg.Mail.Backend {
	case MailBackendHTTP:
		if cfg.Mail.Token == "" {
			errs = append(
				errs,
				fmt.Errorf("mail.token (MAIL_API_KEY) is required when backend is http"),
			)
		}
	case MailBackendSMTP:
		if cfg.Mail.SMTP.Host == "" {
			errs = append(errs, fmt.Errorf("mail.smtp.host is required when backend is smtp"))
		}
		if cfg.Mail.SMTP.From == "" {
			errs = append(errs, fmt.Errorf("mail.smtp.from is required when backend is smtp"))
		}
	case MailBackendNoop:
	default:
		errs = append(
			errs,
			fmt.Errorf("mail.backend must be one of: http, smtp, noop (got %q)", cfg.Mail.Backend),
		)
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, fmt.Errorf("tracing.endpoint is required when tracing is enabled"))
	}

	return errors.Join(errs...)
}
