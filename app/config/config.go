package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// EnvConfigPath names the HCL file used when no --config flag is given.
const EnvConfigPath = "PAGEGEN_CONFIG"

type Config struct {
	Server     HTTPServerConfig
	OpenRouter OpenRouterConfig
	Gemini     GeminiConfig
	Generation GenerationConfig
	Mongo      MongoConfig
	Export     ExportConfig
	Log        LogConfig
}

type HTTPServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// OpenRouterConfig is the primary multi-model provider. An empty APIKey
// leaves it unavailable.
type OpenRouterConfig struct {
	APIKey   string
	BaseURL  string
	SiteURL  string
	SiteName string
	Model    string
}

// GeminiConfig is the optional secondary provider.
type GeminiConfig struct {
	APIKey string
	Model  string
}

type GenerationConfig struct {
	BaseTemperature      float64
	TemperatureStep      float64
	MaxAttempts          int
	SectionMaxTokens     int
	ComponentMaxTokens   int
	SecondaryTemperature float64
	ProviderTimeout      time.Duration
}

// MongoConfig with an empty URI disables project storage.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type ExportConfig struct {
	Dir string
}

type LogConfig struct {
	Level string
}

func Default() *Config {
	return &Config{
		Server: HTTPServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Minute,
		},
		OpenRouter: OpenRouterConfig{
			BaseURL:  "https://openrouter.ai/api/v1",
			SiteURL:  "http://localhost:8080",
			SiteName: "PageGen",
			Model:    "auto",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Generation: GenerationConfig{
			BaseTemperature:      0.7,
			TemperatureStep:      0.1,
			MaxAttempts:          3,
			SectionMaxTokens:     3000,
			ComponentMaxTokens:   2000,
			SecondaryTemperature: 0.7,
			ProviderTimeout:      60 * time.Second,
		},
		Mongo: MongoConfig{
			Database:       "pagegen",
			ConnectTimeout: 10 * time.Second,
		},
		Export: ExportConfig{
			Dir: "./exports",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the config from defaults, then the optional HCL file at path,
// then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		var f fileConfig
		if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
		if err := f.apply(cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Generation.MaxAttempts < 1 {
		return fmt.Errorf("generation max_attempts must be at least 1")
	}
	if c.Generation.SectionMaxTokens <= 0 || c.Generation.ComponentMaxTokens <= 0 {
		return fmt.Errorf("generation token budgets must be positive")
	}
	if c.Generation.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.Level)
	}
	return level, nil
}

func (c HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setString(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.BaseURL, "OPENROUTER_BASE_URL")
	setString(&cfg.OpenRouter.SiteURL, "SITE_URL")
	setString(&cfg.OpenRouter.SiteName, "SITE_NAME")
	setString(&cfg.OpenRouter.Model, "OPENROUTER_MODEL")
	setString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "GEMINI_MODEL")
	setString(&cfg.Mongo.URI, "MONGO_URI")
	setString(&cfg.Mongo.Database, "MONGO_DB")
	setString(&cfg.Export.Dir, "EXPORT_DIR")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	if v := getEnv("SERVER_PORT", ""); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := getEnv("PROVIDER_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PROVIDER_TIMEOUT %q: %w", v, err)
		}
		cfg.Generation.ProviderTimeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	*dst = getEnv(key, *dst)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
