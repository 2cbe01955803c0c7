// Package config loads client configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIURL         string        `yaml:"api_url"`
	DataDir        string        `yaml:"data_dir"`
	RequestTimeout time.Duration `yaml:"-"`
	LogLevel       string        `yaml:"log_level"`

	// Raw duration string from the file; parsed into RequestTimeout.
	Timeout string `yaml:"request_timeout"`

	Mock MockConfig `yaml:"mockapi"`
}

// MockConfig configures the bundled development API server.
type MockConfig struct {
	Port      string `yaml:"port"`
	RedisAddr string `yaml:"redis_addr"`
	JWTSecret string `yaml:"jwt_secret"`
}

// Load reads path (missing file is fine), then applies env overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		APIURL:   "http://localhost:8000",
		LogLevel: "info",
		Timeout:  "30s",
		Mock: MockConfig{
			Port:      "8000",
			JWTSecret: "dev-secret-change-me",
		},
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DataDir = filepath.Join(home, ".educart")
	} else {
		cfg.DataDir = ".educart"
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.APIURL = getEnv("EDUCART_API_URL", cfg.APIURL)
	cfg.DataDir = getEnv("EDUCART_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = getEnv("EDUCART_LOG_LEVEL", cfg.LogLevel)
	cfg.Timeout = getEnv("EDUCART_REQUEST_TIMEOUT", cfg.Timeout)
	cfg.Mock.Port = getEnv("MOCKAPI_PORT", cfg.Mock.Port)
	cfg.Mock.RedisAddr = getEnv("MOCKAPI_REDIS_ADDR", cfg.Mock.RedisAddr)
	cfg.Mock.JWTSecret = getEnv("MOCKAPI_JWT_SECRET", cfg.Mock.JWTSecret)

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid request_timeout %q: %w", cfg.Timeout, err)
	}
	cfg.RequestTimeout = timeout

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
