package sink

import (
	"fmt"
	"os"

	"github.com/dyluth/pulse/internal/config"
)

// Default listen addresses for the two HTTP surfaces.
const (
	DefaultAddr        = ":8095"
	DefaultMetricsAddr = ":9090"
)

// Config holds the sinkd daemon's environment configuration.
type Config struct {
	Facility    string // PULSE_FACILITY (required)
	RedisURL    string // REDIS_URL (required)
	Addr        string // SINK_ADDR (default :8095)
	MetricsAddr string // METRICS_ADDR (default :9090)
}

// LoadConfig reads the daemon configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Facility:    os.Getenv("PULSE_FACILITY"),
		RedisURL:    os.Getenv("REDIS_URL"),
		Addr:        os.Getenv("SINK_ADDR"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}

	if cfg.Facility == "" {
		return nil, fmt.Errorf("PULSE_FACILITY environment variable is required")
	}
	if err := config.ValidateFacilityName(cfg.Facility); err != nil {
		return nil, fmt.Errorf("invalid PULSE_FACILITY: %w", err)
	}

	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = DefaultMetricsAddr
	}

	return cfg, nil
}
