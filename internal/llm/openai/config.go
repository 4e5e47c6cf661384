package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the OpenAI client.
type Config struct {
	APIKey      string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // e.g., "gpt-4o-mini"
	Temperature *float32      // nil applies the default; an explicit 0 is honored
	Timeout     time.Duration // http client timeout
}

const defaultTemperature float32 = 0.3

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient applies defaults and builds a client. Returns ok=false when no
// credential is available; callers should fall back to llm.Disabled.
func NewClient(cfg Config, logger *slog.Logger) (*Client, bool) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature == nil {
		t := defaultTemperature
		cfg.Temperature = &t
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIKey == "" {
		return nil, false
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, true
}
