package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds server configuration
type Config struct {
	Host              string        `yaml:"host"`
	Port              string        `yaml:"port"`
	ServiceName       string        `yaml:"service_name"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	LogRequests       bool          `yaml:"log_requests"`
	RuntimeMetrics    bool          `yaml:"runtime_metrics"`
	MaxSimulatedDelay time.Duration `yaml:"max_simulated_delay"`
	RateLimitRPS      float64       `yaml:"rate_limit_rps"`
	RateLimitBurst    int           `yaml:"rate_limit_burst"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

func defaultConfig() Config {
	return Config{
		Host:              "0.0.0.0",
		Port:              "8080",
		ServiceName:       "order-mgmt",
		LogLevel:          "info",
		LogFormat:         "json",
		LogRequests:       true,
		MaxSimulatedDelay: 20 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Addr is the listen address for http.Server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// loadConfig layers defaults, the optional YAML file named by CONFIG_FILE,
// the optional dotenv file and finally the process environment.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := applyConfigFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg = applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg with any variables present in the environment.
func applyEnv(cfg Config) Config {
	cfg.Host = getEnv("HOST", cfg.Host)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.LogRequests = parseBool(getEnv("LOG_REQUESTS", ""), cfg.LogRequests)
	cfg.RuntimeMetrics = parseBool(getEnv("METRICS_RUNTIME", ""), cfg.RuntimeMetrics)
	cfg.MaxSimulatedDelay = parseDuration(getEnv("MAX_SIMULATED_DELAY", ""), cfg.MaxSimulatedDelay)
	cfg.RateLimitRPS = parseFloat64(getEnv("RATE_LIMIT_RPS", ""), cfg.RateLimitRPS)
	cfg.RateLimitBurst = int(parseInt64(getEnv("RATE_LIMIT_BURST", ""), int64(cfg.RateLimitBurst)))
	cfg.ReadTimeout = parseDuration(getEnv("READ_TIMEOUT", ""), cfg.ReadTimeout)
	cfg.WriteTimeout = parseDuration(getEnv("WRITE_TIMEOUT", ""), cfg.WriteTimeout)
	cfg.IdleTimeout = parseDuration(getEnv("IDLE_TIMEOUT", ""), cfg.IdleTimeout)
	cfg.ShutdownTimeout = parseDuration(getEnv("SHUTDOWN_TIMEOUT", ""), cfg.ShutdownTimeout)
	return cfg
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return errors.New("service name must not be empty")
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64(s string, def int64) int64 {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return def
}

func parseFloat64(s string, def float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

func parseBool(s string, def bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d
	}
	return def
}
