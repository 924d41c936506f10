package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRedisURL is used when pulse.yml omits the redis block.
	DefaultRedisURL = "redis://localhost:6379"

	// DefaultSinkTimeoutSeconds bounds each task-sink request.
	DefaultSinkTimeoutSeconds = 10

	// MaxFacilityNameLength is the maximum length for a facility name
	// (DNS-compatible, since the name is embedded in Redis keys and
	// service hostnames).
	MaxFacilityNameLength = 63
)

// facilityNamePattern is the regex for valid facility names.
// Must be DNS-compatible: lowercase alphanumeric, hyphens allowed (but not
// at start/end).
var facilityNamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// PulseConfig represents the top-level pulse.yml configuration.
type PulseConfig struct {
	Version  string          `yaml:"version"`
	Facility FacilityConfig  `yaml:"facility"`
	Redis    *RedisConfig    `yaml:"redis,omitempty"`
	Sink     *SinkConfig     `yaml:"sink,omitempty"`
	Sessions *SessionsConfig `yaml:"sessions,omitempty"`
}

// FacilityConfig names the facility this deployment serves. Every board
// key is namespaced under it.
type FacilityConfig struct {
	Name string `yaml:"name"`
}

// RedisConfig points at the Redis server backing the ops board.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// SinkConfig points at the task-commit sink.
type SinkConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// SessionsConfig overrides login session behaviour.
type SessionsConfig struct {
	TTLHours int `yaml:"ttl_hours,omitempty"` // 0 = service default
}

// ValidateFacilityName checks a facility name against DNS naming rules.
func ValidateFacilityName(name string) error {
	if name == "" {
		return fmt.Errorf("facility name cannot be empty")
	}

	if len(name) > MaxFacilityNameLength {
		return fmt.Errorf("facility name too long: %d characters (max: %d)", len(name), MaxFacilityNameLength)
	}

	if !facilityNamePattern.MatchString(name) {
		return fmt.Errorf("invalid facility name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}

// Validate performs strict validation on the configuration and fills in
// defaults for optional blocks.
func (c *PulseConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if err := ValidateFacilityName(c.Facility.Name); err != nil {
		return err
	}

	if c.Redis == nil {
		c.Redis = &RedisConfig{}
	}
	if c.Redis.URL == "" {
		c.Redis.URL = DefaultRedisURL
	}

	if c.Sink != nil {
		if c.Sink.BaseURL == "" {
			return fmt.Errorf("sink.base_url cannot be empty when the sink block is present")
		}
		if c.Sink.TimeoutSeconds < 0 {
			return fmt.Errorf("sink.timeout_seconds cannot be negative: %d", c.Sink.TimeoutSeconds)
		}
		if c.Sink.TimeoutSeconds == 0 {
			c.Sink.TimeoutSeconds = DefaultSinkTimeoutSeconds
		}
	}

	if c.Sessions != nil && c.Sessions.TTLHours < 0 {
		return fmt.Errorf("sessions.ttl_hours cannot be negative: %d", c.Sessions.TTLHours)
	}

	return nil
}

// SinkTimeout returns the configured per-request sink timeout, or zero
// when no sink block is present.
func (c *PulseConfig) SinkTimeout() time.Duration {
	if c.Sink == nil {
		return 0
	}
	return time.Duration(c.Sink.TimeoutSeconds) * time.Second
}

// SessionTTL returns the configured login session lifetime; zero means
// "use the session service default".
func (c *PulseConfig) SessionTTL() time.Duration {
	if c.Sessions == nil {
		return 0
	}
	return time.Duration(c.Sessions.TTLHours) * time.Hour
}

// Load reads and validates a pulse.yml file.
func Load(path string) (*PulseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config PulseConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
