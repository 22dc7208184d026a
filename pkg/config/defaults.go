package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GetDefaultConfig returns a Config populated entirely with default values,
// used when no config file is present.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with the CLI's built-in defaults.
// It is called both after loading a partial config file and when no config
// file exists at all.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.Connection.DefaultPort == 0 {
		cfg.Connection.DefaultPort = 5500
	}
	if cfg.Connection.ConnectTimeout == 0 {
		cfg.Connection.ConnectTimeout = 10 * time.Second
	}
	if cfg.Connection.ReplyTimeout == 0 {
		cfg.Connection.ReplyTimeout = 10 * time.Second
	}
	if cfg.Connection.KeepAliveInterval == 0 {
		cfg.Connection.KeepAliveInterval = 180 * time.Second
	}
	if cfg.Connection.DisplayName == "" {
		cfg.Connection.DisplayName = "hotline-cli"
	}

	if cfg.Tracker.Port == 0 {
		cfg.Tracker.Port = 5498
	}
	if cfg.Tracker.Timeout == 0 {
		cfg.Tracker.Timeout = 10 * time.Second
	}

	if cfg.Transfer.DownloadDir == "" {
		cfg.Transfer.DownloadDir = "."
	}

	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
}

// Validate checks a fully-defaulted Config for internal consistency.
func Validate(cfg *Config) error {
	return validate.Struct(cfg)
}
