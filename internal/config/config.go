package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderAIService = "aiservice"
	ProviderOpenAI    = "openai"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	AI     AIConfig     `yaml:"ai"`
	Chrome ChromeConfig `yaml:"chrome"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port           string `yaml:"port"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	// TemplateDir may hold resume.html and style.css replacing the built-in
	// preview assets.
	TemplateDir string `yaml:"template_dir"`
}

type AIConfig struct {
	Provider     string        `yaml:"provider"`
	ServiceURL   string        `yaml:"service_url"`
	OpenAIKey    string        `yaml:"openai_api_key"`
	OpenAIModel  string        `yaml:"openai_model"`
	AgentTimeout time.Duration `yaml:"agent_timeout"`
}

type ChromeConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "3000", MaxUploadBytes: 10 << 20},
		AI: AIConfig{
			Provider:     ProviderAIService,
			ServiceURL:   "http://ai-service:8000",
			OpenAIModel:  "gpt-4o-mini",
			AgentTimeout: 120 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// RESUME_CONFIG and the environment, in that order of precedence. A .env
// file in the working directory is loaded first when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", "error", err)
	}

	cfg := Default()
	if path := os.Getenv("RESUME_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Server.Port)
	str("TEMPLATE_DIR", &c.Server.TemplateDir)
	str("AI_PROVIDER", &c.AI.Provider)
	str("AI_SERVICE_URL", &c.AI.ServiceURL)
	str("OPENAI_API_KEY", &c.AI.OpenAIKey)
	str("OPENAI_MODEL", &c.AI.OpenAIModel)
	str("CHROME_PATH", &c.Chrome.Path)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v := strings.TrimSpace(getenv("MAX_UPLOAD_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		c.Server.MaxUploadBytes = n
	}
	if v := strings.TrimSpace(getenv("AGENT_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AGENT_TIMEOUT: %w", err)
		}
		c.AI.AgentTimeout = d
	}
	c.AI.Provider = strings.ToLower(c.AI.Provider)
	return nil
}

func (c Config) Validate() error {
	switch c.AI.Provider {
	case ProviderAIService:
		if c.AI.ServiceURL == "" {
			return errors.New("config: ai service url is required")
		}
	case ProviderOpenAI:
		if c.AI.OpenAIKey == "" {
			return errors.New("config: OPENAI_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("config: unknown ai provider %q", c.AI.Provider)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return errors.New("config: max upload bytes must be positive")
	}
	if c.AI.AgentTimeout <= 0 {
		return errors.New("config: agent timeout must be positive")
	}
	return nil
}

func (c Config) Addr() string { return ":" + c.Server.Port }
