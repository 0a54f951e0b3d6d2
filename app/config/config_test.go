package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "auto", cfg.OpenRouter.Model)
	assert.Equal(t, 0.7, cfg.Generation.BaseTemperature)
	assert.Equal(t, 0.1, cfg.Generation.TemperatureStep)
	assert.Equal(t, 3, cfg.Generation.MaxAttempts)
	assert.Equal(t, 3000, cfg.Generation.SectionMaxTokens)
	assert.Equal(t, 2000, cfg.Generation.ComponentMaxTokens)
	assert.Equal(t, 60*time.Second, cfg.Generation.ProviderTimeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "pagegen.hcl", `
server {
  port = 9090
  write_timeout = "5m"
}

openrouter {
  api_key = "from-file"
  model   = "gpt-4o"
}

generation {
  max_attempts     = 2
  provider_timeout = "45s"
}

log {
  level = "debug"
}
`)
	t.Setenv("OPENROUTER_API_KEY", "from-env")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "from-env", cfg.OpenRouter.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenRouter.Model)
	assert.Equal(t, 2, cfg.Generation.MaxAttempts)
	assert.Equal(t, 3000, cfg.Generation.SectionMaxTokens)
	assert.Equal(t, 45*time.Second, cfg.Generation.ProviderTimeout)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "bad.hcl", `server { port = `))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "dur.hcl", `generation { provider_timeout = "soon" }`))
	assert.ErrorContains(t, err, "generation.provider_timeout")

	t.Setenv("SERVER_PORT", "eighty")
	_, err = Load("")
	assert.ErrorContains(t, err, "SERVER_PORT")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 70000
	assert.ErrorContains(t, cfg.Validate(), "out of range")

	cfg = Default()
	cfg.Log.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "invalid log level")

	cfg = Default()
	cfg.Generation.MaxAttempts = 0
	assert.Error(t, cfg.Validate())
}
