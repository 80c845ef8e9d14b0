// Package config loads beacon configuration from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/profilebeacon/beacon-go/pkg/discovery"
	"github.com/profilebeacon/beacon-go/pkg/match"
	"github.com/profilebeacon/beacon-go/pkg/profile"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Configuration errors.
var (
	ErrUnknownFormat   = errors.New("unknown config format")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrMissingProfile  = errors.New("local profile not set")
	ErrShortProfile    = errors.New("local profile too short")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config holds beacon settings.
type Config struct {
	// LocalProfile is the local payload as hex.
	LocalProfile string `yaml:"local_profile" toml:"local_profile"`

	// DisplayName is advertised alongside the payload.
	DisplayName string `yaml:"display_name" toml:"display_name"`

	// InstanceName is the mDNS instance name. Generated when empty.
	InstanceName string `yaml:"instance_name" toml:"instance_name"`

	// Interface restricts mDNS to one network interface.
	Interface string `yaml:"interface" toml:"interface"`

	// Port is the advertised DNS-SD port.
	Port int `yaml:"port" toml:"port"`

	// TTL is the advertisement record TTL (Go duration syntax).
	TTL string `yaml:"ttl" toml:"ttl"`

	// BrowseTimeout bounds one-shot scans (Go duration syntax).
	BrowseTimeout string `yaml:"browse_timeout" toml:"browse_timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// ProtocolLog is a path for CBOR protocol capture. Empty disables it.
	ProtocolLog string `yaml:"protocol_log" toml:"protocol_log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Port:          discovery.DefaultPort,
		TTL:           discovery.DefaultTTL.String(),
		BrowseTimeout: discovery.BrowseTimeout.String(),
		LogLevel:      "info",
	}
}

// Load reads the file at path, picking the syntax from its extension, and
// returns the defaulted configuration. It does not validate; callers apply
// flag overrides first and then call Validate.
func Load(path string) (Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return cfg, nil
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Parse decodes data over the defaults.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := c.LocalPayload(); err != nil {
		return err
	}
	if c.InstanceName != "" {
		if err := discovery.ValidateInstanceName(c.InstanceName); err != nil {
			return fmt.Errorf("%w: instance_name: %w", ErrInvalidConfig, err)
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if _, err := parseDuration("ttl", c.TTL); err != nil {
		return err
	}
	if _, err := parseDuration("browse_timeout", c.BrowseTimeout); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LocalPayload decodes the local profile. It must hold at least the two
// bytes the match window spans.
func (c Config) LocalPayload() (profile.Payload, error) {
	if strings.TrimSpace(c.LocalProfile) == "" {
		return nil, ErrMissingProfile
	}
	p, err := profile.HexToBytes(strings.TrimSpace(c.LocalProfile))
	if err != nil {
		return nil, fmt.Errorf("%w: local_profile: %w", ErrInvalidConfig, err)
	}
	if len(p) < match.WindowBytes {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrShortProfile, len(p), match.WindowBytes)
	}
	if len(p) > discovery.MaxPayloadBytes {
		return nil, fmt.Errorf("%w: local_profile: %w", ErrInvalidConfig, discovery.ErrPayloadTooLarge)
	}
	return p, nil
}

// TTLDuration returns the parsed TTL, or the discovery default if unset or
// invalid.
func (c Config) TTLDuration() time.Duration {
	d, err := parseDuration("ttl", c.TTL)
	if err != nil || d == 0 {
		return discovery.DefaultTTL
	}
	return d
}

// BrowseTimeoutDuration returns the parsed browse timeout, or the discovery
// default if unset or invalid.
func (c Config) BrowseTimeoutDuration() time.Duration {
	d, err := parseDuration("browse_timeout", c.BrowseTimeout)
	if err != nil || d == 0 {
		return discovery.BrowseTimeout
	}
	return d
}

// ParseLogLevel maps a level name to a slog level. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}

func parseDuration(field, s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, field)
	}
	return d, nil
}
