// Package config holds the typed application configuration and the viper
// decode path that produces it.
package config

import "time"

// Config is the complete application configuration. Values come from the
// user config file, environment variables (PACELINE_ prefix), and flags,
// merged by viper before decoding.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Throttle ThrottleConfig `mapstructure:"throttle"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
}

// APIConfig contains upstream API endpoints and paging defaults.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	PerPage int    `mapstructure:"per_page"`
}

// OAuthConfig contains the application credentials and the cached token
// triple. The token fields are normally maintained by the store, not
// hand-edited.
type OAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AccessToken  string `mapstructure:"access_token"`
	RefreshToken string `mapstructure:"refresh_token"`
	TokenExpires int64  `mapstructure:"token_expires"`
}

// ThrottleConfig controls request pacing against the upstream quota.
type ThrottleConfig struct {
	// Priority is one of high, medium, low.
	Priority string `mapstructure:"priority"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level.
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
}

// ServerConfig contains HTTP status server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}
