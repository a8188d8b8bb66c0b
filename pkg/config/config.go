// Package config loads dnset configuration from an optional YAML file
// layered under DNSET_* environment variables, with sane defaults for
// everything except the API credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from "5m"-style strings
// in both YAML and environment variables
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler for env parsing
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the plain time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all configuration for dnset
type Config struct {
	PVE    PVEConfig    `yaml:"pve"`
	DNS    DNSConfig    `yaml:"dns"`
	Daemon DaemonConfig `yaml:"daemon"`
	Log    LogConfig    `yaml:"log"`
}

// PVEConfig holds Proxmox API connection settings
type PVEConfig struct {
	Endpoint           string   `yaml:"endpoint" env:"DNSET_PVE_ENDPOINT"`
	TokenID            string   `yaml:"token_id" env:"DNSET_PVE_TOKEN_ID"`
	TokenSecret        string   `yaml:"token_secret" env:"DNSET_PVE_TOKEN_SECRET"`
	InsecureSkipVerify bool     `yaml:"insecure_skip_verify" env:"DNSET_PVE_INSECURE_SKIP_VERIFY"`
	Timeout            Duration `yaml:"timeout" env:"DNSET_PVE_TIMEOUT"`
}

// DNSConfig holds resolver settings
type DNSConfig struct {
	// Nameservers are host:port pairs; empty means /etc/resolv.conf
	Nameservers []string `yaml:"nameservers" env:"DNSET_DNS_NAMESERVERS" envSeparator:","`
	Timeout     Duration `yaml:"timeout" env:"DNSET_DNS_TIMEOUT"`
}

// DaemonConfig holds periodic-mode settings
type DaemonConfig struct {
	Interval    Duration `yaml:"interval" env:"DNSET_INTERVAL"`
	MetricsAddr string   `yaml:"metrics_addr" env:"DNSET_METRICS_ADDR"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level" env:"DNSET_LOG_LEVEL"`
	JSON  bool   `yaml:"json" env:"DNSET_LOG_JSON"`
}

// Default returns the built-in configuration defaults
func Default() *Config {
	return &Config{
		PVE: PVEConfig{
			Timeout: Duration(30 * time.Second),
		},
		DNS: DNSConfig{
			Timeout: Duration(5 * time.Second),
		},
		Daemon: DaemonConfig{
			Interval:    Duration(5 * time.Minute),
			MetricsAddr: "127.0.0.1:9544",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration with the precedence
// defaults < file < environment. An empty path skips the file layer;
// a non-empty path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg.PVE); err != nil {
		return nil, fmt.Errorf("parsing pve config from environment: %w", err)
	}
	if err := env.Parse(&cfg.DNS); err != nil {
		return nil, fmt.Errorf("parsing dns config from environment: %w", err)
	}
	if err := env.Parse(&cfg.Daemon); err != nil {
		return nil, fmt.Errorf("parsing daemon config from environment: %w", err)
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, fmt.Errorf("parsing log config from environment: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a run. This is the
// only gate that stops the process with a non-zero exit; everything
// past it is best-effort.
func (c *Config) Validate() error {
	if c.PVE.Endpoint == "" {
		return fmt.Errorf("pve.endpoint is required (or DNSET_PVE_ENDPOINT)")
	}
	if c.PVE.TokenID == "" {
		return fmt.Errorf("pve.token_id is required (or DNSET_PVE_TOKEN_ID)")
	}
	if c.PVE.TokenSecret == "" {
		return fmt.Errorf("pve.token_secret is required (or DNSET_PVE_TOKEN_SECRET)")
	}
	if c.Daemon.Interval.Std() <= 0 {
		return fmt.Errorf("daemon.interval must be positive")
	}
	return nil
}
