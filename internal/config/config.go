// Package config loads the client configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the client needs to reach the server.
type Config struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Transport string `mapstructure:"transport"`
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
}

// Addr returns the "host:port" dial target.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// URL returns the WebSocket dial target.
func (c Config) URL() string {
	return fmt.Sprintf("ws://%s/", c.Addr())
}

// Load reads an optional config.yaml from the working directory and applies
// defaults. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 7777)
	v.SetDefault("transport", "tcp")
	v.SetDefault("log_file", "chatabc.log")
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Transport != "tcp" && cfg.Transport != "ws" {
		return nil, fmt.Errorf("unknown transport %q (want tcp or ws)", cfg.Transport)
	}
	return &cfg, nil
}
