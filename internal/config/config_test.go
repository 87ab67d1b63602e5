package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/render"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_KEY", "COILFORM_ENGINE_URL", "COILFORM_ADDR", "COILFORM_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, engine.DefaultBaseURL, cfg.Engine.BaseURL)
	assert.Equal(t, []int{0}, cfg.Engine.OptionsData)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ParsesYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "coilform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  shutdown_timeout: 3s
engine:
  base_url: "https://engine.example.com/v1"
  timeout: 45s
logging:
  level: debug
  format: console
theme:
  name: systemair
  asset_prefix: /assets/themes/systemair
  stylesheet: coil.css
  tokens:
    brand: "#0b5394"
  variants:
    dark:
      stylesheet: coil.dark.css
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "unset keys keep defaults")
	assert.Equal(t, 45*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, "console", cfg.Logging.Format)
	require.NoError(t, cfg.Validate())

	manifest := cfg.Theme.Manifest()
	require.NotNil(t, manifest)
	assert.Equal(t, "systemair", manifest.Name)
	assert.Equal(t, "coil.css", manifest.Assets.Files[render.AssetStylesheet])
	assert.Equal(t, "coil.dark.css", manifest.Variants["dark"].Assets.Files[render.AssetStylesheet])
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("COILFORM_ENGINE_URL", "http://localhost:9999")
	t.Setenv("COILFORM_ADDR", "127.0.0.1:7000")
	t.Setenv("COILFORM_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Engine.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.Engine.BaseURL)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	t.Run("relative engine url", func(t *testing.T) {
		cfg := Default()
		cfg.Engine.BaseURL = "/v1"
		assert.Error(t, cfg.Validate())
	})
	t.Run("bad log level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "loud"
		assert.Error(t, cfg.Validate())
	})
	t.Run("bad log format", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Validate())
	})
	t.Run("negative timeout", func(t *testing.T) {
		cfg := Default()
		cfg.Engine.Timeout = -time.Second
		assert.Error(t, cfg.Validate())
	})
	t.Run("unknown fixed parameter", func(t *testing.T) {
		cfg := Default()
		cfg.Form.Fixed = map[string]any{"Colour": "red"}
		assert.ErrorContains(t, cfg.Validate(), "Colour")
	})
	t.Run("fixed calculation type", func(t *testing.T) {
		cfg := Default()
		cfg.Form.Fixed = map[string]any{"CalculationType": 7}
		assert.Error(t, cfg.Validate())
		cfg.Form.Fixed = map[string]any{"CalculationType": 3, "CoilType": 94}
		assert.NoError(t, cfg.Validate())
	})
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "coilform.yaml")
	cfg := Default()
	cfg.Theme.Name = "systemair"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoggingBuild(t *testing.T) {
	logger, err := LoggingConfig{Level: "error", Format: "console"}.Build(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1), "verbose enables debug")

	_, err = LoggingConfig{Level: "nope"}.Build(false)
	assert.Error(t, err)
}

func TestThemeManifestDisabled(t *testing.T) {
	assert.Nil(t, ThemeConfig{}.Manifest())
}
