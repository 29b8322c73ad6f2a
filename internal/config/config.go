// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/openfxt/chatfxt-tui/internal/model"
	"github.com/openfxt/chatfxt-tui/internal/remote"
	"github.com/openfxt/chatfxt-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatfxt configuration.
type Config struct {
	// Remote endpoint configuration
	Remote RemoteConfig `toml:"remote" json:"remote"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Logging configuration
	Log LogConfig `toml:"log" json:"log"`
}

// RemoteConfig configures the hosted endpoint.
type RemoteConfig struct {
	// ChatURL receives POSTed prompts
	ChatURL string `toml:"chat_url" json:"chat_url"`
	// PingURL receives the startup analytics GET
	PingURL string `toml:"ping_url" json:"ping_url"`
	// PingEnabled toggles the startup analytics GET
	PingEnabled bool `toml:"ping_enabled" json:"ping_enabled"`
	// Timeout bounds one request; "0s" disables the client-side timeout
	Timeout Duration `toml:"timeout" json:"timeout"`
}

// UIConfig configures the chat view.
type UIConfig struct {
	// Greeting is the seeded assistant message
	Greeting string `toml:"greeting" json:"greeting"`
	// Theme selects the markdown style: auto, dark, light, notty
	Theme string `toml:"theme" json:"theme"`
	// MaxInput is the input character limit
	MaxInput int `toml:"max_input" json:"max_input"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Format: json or text
	Format string `toml:"format" json:"format"`
	// File is the log path (empty = ~/.chatfxt/logs/chatfxt.log)
	File string `toml:"file" json:"file"`
}

// Duration is a time.Duration that reads and writes as "30s" in TOML/JSON.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config pointing at the hosted service.
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			ChatURL:     remote.DefaultChatURL,
			PingURL:     remote.DefaultPingURL,
			PingEnabled: true,
			Timeout:     Duration{remote.DefaultTimeout},
		},
		UI: UIConfig{
			Greeting: model.DefaultGreeting,
			Theme:    "auto",
			MaxInput: 512,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the chatfxt configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chatfxt"), nil
}

// PathTOML returns the path to the TOML config file.
func PathTOML() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the path to the JSON config file.
func PathJSON() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default locations. Tries TOML first,
// then JSON, and falls back to defaults. Environment overrides are applied
// last and the result is validated.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){PathTOML, PathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. Keys missing from
// the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	if strings.HasSuffix(path, ".json") {
		err = decodeJSON(cfg, path)
	} else {
		err = decodeTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration as TOML to path with 0600 permissions.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# chatfxt configuration file\n")
	buf.WriteString("# Generated by chatfxt - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String returns the configuration encoded as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("error encoding config: %v", err)
	}
	return buf.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns ValidateErrors if anything
// is wrong.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateURL(c.Remote.ChatURL); err != nil {
		errs = append(errs, ValidationError{Field: "remote.chat_url", Message: err.Error()})
	}
	if c.Remote.PingEnabled {
		if err := validateURL(c.Remote.PingURL); err != nil {
			errs = append(errs, ValidationError{Field: "remote.ping_url", Message: err.Error()})
		}
	}
	if c.Remote.Timeout.Duration < 0 {
		errs = append(errs, ValidationError{Field: "remote.timeout", Message: "must not be negative"})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true, "notty": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light, notty", c.UI.Theme),
		})
	}
	if c.UI.MaxInput <= 0 {
		errs = append(errs, ValidationError{Field: "ui.max_input", Message: "must be positive"})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: json, text", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got '%s'", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - CHATFXT_ENDPOINT: overrides remote.chat_url
//   - CHATFXT_PING_URL: overrides remote.ping_url
//   - CHATFXT_NO_PING: "1" or "true" disables the startup ping
//   - CHATFXT_TIMEOUT: overrides remote.timeout (Go duration, or seconds)
//   - CHATFXT_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if endpoint := os.Getenv("CHATFXT_ENDPOINT"); endpoint != "" {
		c.Remote.ChatURL = endpoint
	}
	if ping := os.Getenv("CHATFXT_PING_URL"); ping != "" {
		c.Remote.PingURL = ping
	}
	if noPing := os.Getenv("CHATFXT_NO_PING"); noPing != "" {
		if parseBool(noPing) {
			c.Remote.PingEnabled = false
		}
	}
	if timeout := os.Getenv("CHATFXT_TIMEOUT"); timeout != "" {
		if d, err := ParseTimeout(timeout); err == nil {
			c.Remote.Timeout = Duration{d}
		}
	}
	if level := os.Getenv("CHATFXT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// ParseTimeout accepts a Go duration ("15s", "1m") or a bare number of
// seconds ("15").
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes"
}
