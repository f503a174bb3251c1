// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath       = "config/app.yaml"
	defaultTokenCleanupCron = "0 * * * *"
	defaultShutdownTimeout  = 30 * time.Second
	defaultLoginMaxAttempts = 5
	defaultLoginLockout     = 5 * time.Minute
	defaultRequestsPerSec   = 5
	defaultBurst            = 10
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type AuthConfig struct {
	// Zero keeps tokens valid until logout.
	TokenTTL          time.Duration `yaml:"token_ttl"`
	TokenCleanupCron  string        `yaml:"token_cleanup_cron"`
	LoginMaxAttempts  int           `yaml:"login_max_attempts"`
	LoginLockout      time.Duration `yaml:"login_lockout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

type EmailConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type Config struct {
	App struct {
		Name            string        `yaml:"name"`
		Environment     string        `yaml:"environment"`
		Port            int           `yaml:"port"`
		BaseURL         string        `yaml:"base_url"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		TrustProxy      bool          `yaml:"trust_proxy"`
		CORSOrigins     []string      `yaml:"cors_origins"`
		SecretKey       string        `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Email.AccessKeyID = os.Getenv("SES_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("SES_SECRET_ACCESS_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML config and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// PathFromEnv returns CONFIG_PATH or the default config location.
func PathFromEnv() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return DefaultConfigPath
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.ShutdownTimeout == 0 {
		c.App.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Auth.TokenCleanupCron == "" {
		c.Auth.TokenCleanupCron = defaultTokenCleanupCron
	}
	if c.Auth.LoginMaxAttempts == 0 {
		c.Auth.LoginMaxAttempts = defaultLoginMaxAttempts
	}
	if c.Auth.LoginLockout == 0 {
		c.Auth.LoginLockout = defaultLoginLockout
	}
	if c.Auth.RequestsPerSecond == 0 {
		c.Auth.RequestsPerSecond = defaultRequestsPerSec
	}
	if c.Auth.Burst == 0 {
		c.Auth.Burst = defaultBurst
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.App.ShutdownTimeout < 0 {
		return fmt.Errorf("app shutdown_timeout must not be negative")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("auth token_ttl must not be negative")
	}
	if c.Auth.LoginLockout < 0 {
		return fmt.Errorf("auth login_lockout must not be negative")
	}
	if c.Auth.LoginMaxAttempts < 0 {
		return fmt.Errorf("auth login_max_attempts must not be negative")
	}
	if c.Auth.RequestsPerSecond < 0 || c.Auth.Burst < 0 {
		return fmt.Errorf("auth rate limits must not be negative")
	}
	if _, err := cron.ParseStandard(c.Auth.TokenCleanupCron); err != nil {
		return fmt.Errorf("auth token_cleanup_cron is invalid: %w", err)
	}

	if c.Email.Enabled {
		if c.Email.Region == "" || c.Email.Sender == "" {
			return fmt.Errorf("email region and sender are required when email is enabled")
		}
		if c.Email.AccessKeyID == "" || c.Email.SecretAccessKey == "" {
			return fmt.Errorf("email credentials are required when email is enabled")
		}
	}

	return nil
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
