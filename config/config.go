package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the kiosk
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Server  ServerConfig  `mapstructure:"server"`
	Notices NoticesConfig `mapstructure:"notices"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
}

// BackendConfig holds the SmartKart backend connection settings
type BackendConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
	RateLimit float64       `mapstructure:"rate_limit"`
	Burst     int           `mapstructure:"burst"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ServerConfig holds kiosk API server configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NoticesConfig holds the transient notice store configuration
type NoticesConfig struct {
	Type      string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// CatalogConfig holds catalog refresh configuration
type CatalogConfig struct {
	RefreshSchedule string `mapstructure:"refresh_schedule"` // cron spec, empty disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "json" or "console"
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// IsDevelopment reports whether the kiosk runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Load loads configuration from a .env file, environment variables and an
// optional config file. An explicit configFile overrides the search path.
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/smartkart/")
	}

	v.SetEnvPrefix("SMARTKART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.timeout", "30s")
	v.SetDefault("backend.rate_limit", 20)
	v.SetDefault("backend.burst", 10)
	v.SetDefault("backend.user_agent", "SmartKart-Kiosk/1.0")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("notices.type", "memory")
	v.SetDefault("notices.redis_url", "")
	v.SetDefault("notices.key_prefix", "smartkart:")
	v.SetDefault("notices.ttl", "5s")

	v.SetDefault("catalog.refresh_schedule", "@every 10m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
}

// validate validates the configuration
func validate(config *Config) error {
	u, err := url.Parse(config.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend base URL must be an absolute http(s) URL, got: %q", config.Backend.BaseURL)
	}

	if config.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout must not be negative, got: %s", config.Backend.Timeout)
	}

	if config.Backend.RateLimit < 0 {
		return fmt.Errorf("backend rate limit must not be negative, got: %v", config.Backend.RateLimit)
	}

	if config.Notices.Type != "memory" && config.Notices.Type != "redis" {
		return fmt.Errorf("notices type must be 'memory' or 'redis', got: %s", config.Notices.Type)
	}

	if config.Notices.Type == "redis" && config.Notices.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when notices type is 'redis'")
	}

	if config.Notices.TTL <= 0 {
		return fmt.Errorf("notices TTL must be positive, got: %s", config.Notices.TTL)
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	return nil
}

// loadEnvFile loads ./.env when present. Variables already set in the
// environment are not overridden.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
