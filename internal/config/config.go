package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the nyx service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"nyx-server"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8084"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	ChatModel     string `env:"CHAT_MODEL" envDefault:"gemini-2.5-flash"`
	LayoutModel   string `env:"LAYOUT_MODEL" envDefault:"gemini-2.5-flash-lite-preview-09-2025"`
	TitleModel    string `env:"TITLE_MODEL" envDefault:"gemini-1.5-flash-latest"`
	ImageModel    string `env:"IMAGE_MODEL" envDefault:"imagen-4.0-fast-generate-001"`
	VideoModel    string `env:"VIDEO_MODEL" envDefault:"veo-3.0-generate-preview"`

	PixabayAPIKey  string `env:"PIXABAY_API_KEY"`
	PixabayBaseURL string `env:"PIXABAY_BASE_URL" envDefault:"https://pixabay.com"`
	ImageProxyURL  string `env:"IMAGE_PROXY_URL" envDefault:""`

	WikipediaBaseURL string `env:"WIKIPEDIA_BASE_URL" envDefault:"https://pt.wikipedia.org"`

	ToolTimeout        time.Duration `env:"TOOL_EXECUTION_TIMEOUT" envDefault:"45s"`
	VideoPollInterval  time.Duration `env:"VIDEO_POLL_INTERVAL" envDefault:"5s"`
	VideoPollMaxDelay  time.Duration `env:"VIDEO_POLL_MAX_DELAY" envDefault:"30s"`
	VideoMaxWait       time.Duration `env:"VIDEO_MAX_WAIT" envDefault:"6m"`
	AssetFetchTimeout  time.Duration `env:"ASSET_FETCH_TIMEOUT" envDefault:"20s"`
	ChatTimeZone       string        `env:"CHAT_TIMEZONE" envDefault:"America/Sao_Paulo"`
	MaxContentSlides   int           `env:"MAX_CONTENT_SLIDES" envDefault:"17"`
	MinContentSlides   int           `env:"MIN_CONTENT_SLIDES" envDefault:"2"`
	ProxyAllowInsecure bool          `env:"IMAGE_PROXY_ALLOW_INSECURE" envDefault:"false"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = 45 * time.Second
	}
	if cfg.VideoPollInterval <= 0 {
		cfg.VideoPollInterval = 5 * time.Second
	}
	if cfg.VideoMaxWait <= cfg.VideoPollInterval {
		return nil, fmt.Errorf("VIDEO_MAX_WAIT must exceed VIDEO_POLL_INTERVAL")
	}
	if cfg.MinContentSlides < 1 || cfg.MaxContentSlides <= cfg.MinContentSlides {
		return nil, fmt.Errorf("invalid content slide bounds [%d,%d]", cfg.MinContentSlides, cfg.MaxContentSlides)
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
