package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dnset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Daemon.Interval.Std())
	assert.Equal(t, 30*time.Second, cfg.PVE.Timeout.Std())
	assert.Equal(t, 5*time.Second, cfg.DNS.Timeout.Std())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.DNS.Nameservers)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
pve:
  endpoint: https://pve1:8006
  token_id: root@pam!dnset
  token_secret: s3cret
  insecure_skip_verify: true
dns:
  nameservers: ["10.0.0.53:53"]
  timeout: 2s
daemon:
  interval: 10m
log:
  level: debug
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://pve1:8006", cfg.PVE.Endpoint)
	assert.Equal(t, "root@pam!dnset", cfg.PVE.TokenID)
	assert.True(t, cfg.PVE.InsecureSkipVerify)
	assert.Equal(t, []string{"10.0.0.53:53"}, cfg.DNS.Nameservers)
	assert.Equal(t, 2*time.Second, cfg.DNS.Timeout.Std())
	assert.Equal(t, 10*time.Minute, cfg.Daemon.Interval.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)

	// untouched fields keep their defaults
	assert.Equal(t, 30*time.Second, cfg.PVE.Timeout.Std())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
pve:
  endpoint: https://pve1:8006
daemon:
  interval: 10m
`)

	t.Setenv("DNSET_PVE_ENDPOINT", "https://pve2:8006")
	t.Setenv("DNSET_INTERVAL", "30s")
	t.Setenv("DNSET_DNS_NAMESERVERS", "1.1.1.1:53,9.9.9.9:53")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://pve2:8006", cfg.PVE.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Daemon.Interval.Std())
	assert.Equal(t, []string{"1.1.1.1:53", "9.9.9.9:53"}, cfg.DNS.Nameservers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadBadDuration(t *testing.T) {
	path := writeConfig(t, `
daemon:
  interval: soon
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.PVE.Endpoint = "https://pve1:8006"
		cfg.PVE.TokenID = "root@pam!dnset"
		cfg.PVE.TokenSecret = "s3cret"
		return cfg
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing endpoint", mutate: func(c *Config) { c.PVE.Endpoint = "" }},
		{name: "missing token id", mutate: func(c *Config) { c.PVE.TokenID = "" }},
		{name: "missing token secret", mutate: func(c *Config) { c.PVE.TokenSecret = "" }},
		{name: "zero interval", mutate: func(c *Config) { c.Daemon.Interval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
