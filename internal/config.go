package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Vault   VaultConfig       `yaml:"vault"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	Preview PreviewConfig     `yaml:"preview"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Preview.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// PreviewConfig holds hover preview timing and cache configuration.
// Delays are in milliseconds, TTLs and the fetch timeout in seconds.
type PreviewConfig struct {
	ShowDelayMS       int `yaml:"show_delay_ms"`
	LinkShowDelayMS   int `yaml:"link_show_delay_ms"`
	HideDelayMS       int `yaml:"hide_delay_ms"`
	RecordTTLSec      int `yaml:"record_ttl_seconds"`
	LinkTTLSec        int `yaml:"link_ttl_seconds"`
	LinkFailureTTLSec int `yaml:"link_failure_ttl_seconds"`
	FetchTimeoutSec   int `yaml:"fetch_timeout_seconds"`
}

// Validate validates the preview configuration.
func (c *PreviewConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ShowDelayMS, validation.Required, validation.Min(1)),
		validation.Field(&c.LinkShowDelayMS, validation.Required, validation.Min(1)),
		validation.Field(&c.HideDelayMS, validation.Required, validation.Min(1)),
		validation.Field(&c.RecordTTLSec, validation.Required, validation.Min(1)),
		validation.Field(&c.LinkTTLSec, validation.Required, validation.Min(1)),
		validation.Field(&c.LinkFailureTTLSec, validation.Required, validation.Min(1)),
		validation.Field(&c.FetchTimeoutSec, validation.Required, validation.Min(1)),
	)
}

// ShowDelay returns the record hover show delay.
func (c *PreviewConfig) ShowDelay() time.Duration {
	return time.Duration(c.ShowDelayMS) * time.Millisecond
}

// LinkShowDelay returns the external-link hover show delay.
func (c *PreviewConfig) LinkShowDelay() time.Duration {
	return time.Duration(c.LinkShowDelayMS) * time.Millisecond
}

// HideDelay returns the popover hide grace period.
func (c *PreviewConfig) HideDelay() time.Duration {
	return time.Duration(c.HideDelayMS) * time.Millisecond
}

// RecordTTL returns the record cache lifetime.
func (c *PreviewConfig) RecordTTL() time.Duration {
	return time.Duration(c.RecordTTLSec) * time.Second
}

// LinkTTL returns the link metadata cache lifetime.
func (c *PreviewConfig) LinkTTL() time.Duration {
	return time.Duration(c.LinkTTLSec) * time.Second
}

// LinkFailureTTL returns the negative-cache back-off window.
func (c *PreviewConfig) LinkFailureTTL() time.Duration {
	return time.Duration(c.LinkFailureTTLSec) * time.Second
}

// FetchTimeout returns the metadata fetch timeout.
func (c *PreviewConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		SQLite: SQLiteConfig{
			Path: "./laguz.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Preview: PreviewConfig{
			ShowDelayMS:       300,
			LinkShowDelayMS:   400,
			HideDelayMS:       150,
			RecordTTLSec:      30,
			LinkTTLSec:        300,
			LinkFailureTTLSec: 60,
			FetchTimeoutSec:   5,
		},
	}
}
