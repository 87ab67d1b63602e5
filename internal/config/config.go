package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/engine"
)

// Config is the coilform configuration file.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
	Theme   ThemeConfig   `yaml:"theme"`
	Form    FormConfig    `yaml:"form"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	ResultsPath     string        `yaml:"results_path"`
}

// EngineConfig configures the remote calculation service. A zero Timeout
// leaves calls bounded only by the request context.
type EngineConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	OptionsData []int         `yaml:"options_data"`
}

// FormConfig tunes the rendered form.
type FormConfig struct {
	Renderer string `yaml:"renderer"`
	Preset   string `yaml:"preset"`
	Title    string `yaml:"title"`
	// Fixed pins parameters to a value and hides them from the form.
	Fixed map[string]any `yaml:"fixed,omitempty"`
}

// ThemeConfig describes a single go-theme manifest built from config.
type ThemeConfig struct {
	Name        string                        `yaml:"name"`
	Variant     string                        `yaml:"variant"`
	AssetPrefix string                        `yaml:"asset_prefix"`
	Stylesheet  string                        `yaml:"stylesheet"`
	Tokens      map[string]string             `yaml:"tokens,omitempty"`
	Variants    map[string]ThemeVariantConfig `yaml:"variants,omitempty"`
}

// ThemeVariantConfig overrides tokens and the stylesheet for one variant.
type ThemeVariantConfig struct {
	Stylesheet string            `yaml:"stylesheet"`
	Tokens     map[string]string `yaml:"tokens,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			ResultsPath:     "/results",
		},
		Engine: EngineConfig{
			BaseURL:     engine.DefaultBaseURL,
			OptionsData: []int{0},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Form: FormConfig{
			Renderer: "vanilla",
			Title:    "Coil Calculator",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("API_KEY"); key != "" {
		c.Engine.APIKey = key
	}
	if base := os.Getenv("COILFORM_ENGINE_URL"); base != "" {
		c.Engine.BaseURL = base
	}
	if addr := os.Getenv("COILFORM_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("COILFORM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	parsed, err := url.Parse(c.Engine.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: engine.base_url %q is not an absolute URL", c.Engine.BaseURL)
	}
	if c.Engine.Timeout < 0 {
		return fmt.Errorf("config: engine.timeout must not be negative")
	}
	if _, err := c.Logging.level(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: logging.format %q (valid: json, console)", c.Logging.Format)
	}
	registry := coil.DefaultRegistry()
	for key, value := range c.Form.Fixed {
		if !registry.Has(key) {
			return fmt.Errorf("config: form.fixed: unknown parameter %q", key)
		}
		if key == coil.KeyCalculationType && !coil.ModeFromValue(value).Known() {
			return fmt.Errorf("config: form.fixed: %v is not a calculation type", value)
		}
	}
	return nil
}
