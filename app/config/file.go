package config

import (
	"fmt"
	"time"
)

// fileConfig mirrors Config for HCL decoding. Every block and attribute is
// optional; only what is set overrides the defaults.
type fileConfig struct {
	Server     *serverBlock     `hcl:"server,block"`
	OpenRouter *openRouterBlock `hcl:"openrouter,block"`
	Gemini     *geminiBlock     `hcl:"gemini,block"`
	Generation *generationBlock `hcl:"generation,block"`
	Mongo      *mongoBlock      `hcl:"mongo,block"`
	Export     *exportBlock     `hcl:"export,block"`
	Log        *logBlock        `hcl:"log,block"`
}

type serverBlock struct {
	Host         *string `hcl:"host,optional"`
	Port         *int    `hcl:"port,optional"`
	ReadTimeout  *string `hcl:"read_timeout,optional"`
	WriteTimeout *string `hcl:"write_timeout,optional"`
}

type openRouterBlock struct {
	APIKey   *string `hcl:"api_key,optional"`
	BaseURL  *string `hcl:"base_url,optional"`
	SiteURL  *string `hcl:"site_url,optional"`
	SiteName *string `hcl:"site_name,optional"`
	Model    *string `hcl:"model,optional"`
}

type geminiBlock struct {
	APIKey *string `hcl:"api_key,optional"`
	Model  *string `hcl:"model,optional"`
}

type generationBlock struct {
	BaseTemperature      *float64 `hcl:"base_temperature,optional"`
	TemperatureStep      *float64 `hcl:"temperature_step,optional"`
	MaxAttempts          *int     `hcl:"max_attempts,optional"`
	SectionMaxTokens     *int     `hcl:"section_max_tokens,optional"`
	ComponentMaxTokens   *int     `hcl:"component_max_tokens,optional"`
	SecondaryTemperature *float64 `hcl:"secondary_temperature,optional"`
	ProviderTimeout      *string  `hcl:"provider_timeout,optional"`
}

type mongoBlock struct {
	URI            *string `hcl:"uri,optional"`
	Database       *string `hcl:"database,optional"`
	ConnectTimeout *string `hcl:"connect_timeout,optional"`
}

type exportBlock struct {
	Dir *string `hcl:"dir,optional"`
}

type logBlock struct {
	Level *string `hcl:"level,optional"`
}

func (f *fileConfig) apply(cfg *Config) error {
	if b := f.Server; b != nil {
		set(&cfg.Server.Host, b.Host)
		set(&cfg.Server.Port, b.Port)
		if err := setDuration(&cfg.Server.ReadTimeout, b.ReadTimeout, "server.read_timeout"); err != nil {
			return err
		}
		if err := setDuration(&cfg.Server.WriteTimeout, b.WriteTimeout, "server.write_timeout"); err != nil {
			return err
		}
	}
	if b := f.OpenRouter; b != nil {
		set(&cfg.OpenRouter.APIKey, b.APIKey)
		set(&cfg.OpenRouter.BaseURL, b.BaseURL)
		set(&cfg.OpenRouter.SiteURL, b.SiteURL)
		set(&cfg.OpenRouter.SiteName, b.SiteName)
		set(&cfg.OpenRouter.Model, b.Model)
	}
	if b := f.Gemini; b != nil {
		set(&cfg.Gemini.APIKey, b.APIKey)
		set(&cfg.Gemini.Model, b.Model)
	}
	if b := f.Generation; b != nil {
		set(&cfg.Generation.BaseTemperature, b.BaseTemperature)
		set(&cfg.Generation.TemperatureStep, b.TemperatureStep)
		set(&cfg.Generation.MaxAttempts, b.MaxAttempts)
		set(&cfg.Generation.SectionMaxTokens, b.SectionMaxTokens)
		set(&cfg.Generation.ComponentMaxTokens, b.ComponentMaxTokens)
		set(&cfg.Generation.SecondaryTemperature, b.SecondaryTemperature)
		if err := setDuration(&cfg.Generation.ProviderTimeout, b.ProviderTimeout, "generation.provider_timeout"); err != nil {
			return err
		}
	}
	if b := f.Mongo; b != nil {
		set(&cfg.Mongo.URI, b.URI)
		set(&cfg.Mongo.Database, b.Database)
		if err := setDuration(&cfg.Mongo.ConnectTimeout, b.ConnectTimeout, "mongo.connect_timeout"); err != nil {
			return err
		}
	}
	if b := f.Export; b != nil {
		set(&cfg.Export.Dir, b.Dir)
	}
	if b := f.Log; b != nil {
		set(&cfg.Log.Level, b.Level)
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, name string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, *v, err)
	}
	*dst = d
	return nil
}
