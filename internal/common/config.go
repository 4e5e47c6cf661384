package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Bitacora BitacoraConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr         string
	BodyLimit    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig holds classification service configuration.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// BitacoraConfig holds durable accumulation configuration.
type BitacoraConfig struct {
	WorkbookPath string
	HistoryDB    string
	ImpactLabels string // optional YAML override for impact labels
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         getEnv("HTTP_ADDR", ":8080"),
			BodyLimit:    getEnv("HTTP_BODY_LIMIT", "32M"),
			ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 60*time.Second),
			WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 120*time.Second),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.3),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Bitacora: BitacoraConfig{
			WorkbookPath: getEnv("BITACORA_PATH", "./data/bitacora_novedades.xlsx"),
			HistoryDB:    getEnv("HISTORY_DB_PATH", "./data/novedades.db"),
			ImpactLabels: getEnv("IMPACT_LABELS_PATH", ""),
		},
	}
}

// Validate validates the loaded configuration. A missing OPENAI_API_KEY is
// not an error: the classifier degrades to the manual-review sentinel.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Bitacora.WorkbookPath == "" {
		return NewAppError("CONFIG_ERROR", "BITACORA_PATH is required", ErrInvalidInput)
	}
	if c.Bitacora.HistoryDB == "" {
		return NewAppError("CONFIG_ERROR", "HISTORY_DB_PATH is required", ErrInvalidInput)
	}
	return nil
}

// LoadImpactLabels reads a YAML file mapping category strings to impact
// labels. An empty path yields a nil map (defaults apply).
func LoadImpactLabels(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read impact labels: %w", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse impact labels: %w", err)
	}
	return m, nil
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
