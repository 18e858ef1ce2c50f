package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "9090")
	t.Setenv("SERVICE_NAME", "billing")
	t.Setenv("LOG_REQUESTS", "false")
	t.Setenv("METRICS_RUNTIME", "true")
	t.Setenv("MAX_SIMULATED_DELAY", "3s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "billing", cfg.ServiceName)
	assert.False(t, cfg.LogRequests)
	assert.True(t, cfg.RuntimeMetrics)
	assert.Equal(t, 3*time.Second, cfg.MaxSimulatedDelay)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
}

func TestLoadConfig_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("RATE_LIMIT_BURST", "lots")
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("LOG_REQUESTS", "perhaps")

	cfg, err := loadConfig()
	require.NoError(t, err)
	def := defaultConfig()
	assert.Equal(t, def.RateLimitBurst, cfg.RateLimitBurst)
	assert.Equal(t, def.ReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, def.LogRequests, cfg.LogRequests)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7070"
service_name: inventory-svc
log_format: console
max_simulated_delay: 1500ms
`), 0o600))
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7171")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7171", cfg.Port, "environment wins over file")
	assert.Equal(t, "inventory-svc", cfg.ServiceName)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 1500*time.Millisecond, cfg.MaxSimulatedDelay)
	assert.Equal(t, defaultConfig().WriteTimeout, cfg.WriteTimeout)
}

func TestLoadConfig_BadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not, a, string"), 0o600))
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("CONFIG_FILE", path)

	_, err := loadConfig()
	assert.ErrorContains(t, err, "parse config file")

	t.Setenv("CONFIG_FILE", filepath.Join(dir, "nope.yaml"))
	_, err = loadConfig()
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	// godotenv sets variables directly, so make sure they are removed afterwards.
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("ENV_FILE", path)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty service name", func(c *Config) { c.ServiceName = "  " }},
		{"non numeric port", func(c *Config) { c.Port = "http" }},
		{"port out of range", func(c *Config) { c.Port = "70000" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
	assert.NoError(t, defaultConfig().validate())
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, int64(7), parseInt64("not-a-number", 7))
	assert.Equal(t, 1.5, parseFloat64("not-a-number", 1.5))
	assert.True(t, parseBool("", true))
	assert.False(t, parseBool("False", true))
	assert.Equal(t, time.Second, parseDuration("-5s", time.Second))
}

func TestNewLogger(t *testing.T) {
	cfg := defaultConfig()
	logger, err := newLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	cfg.LogFormat = "console"
	cfg.LogLevel = "debug"
	logger, err = newLogger(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	cfg.LogLevel = "loud"
	_, err = newLogger(cfg)
	assert.Error(t, err)
}
