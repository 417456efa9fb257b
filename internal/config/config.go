package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned when no API key could be resolved. It must be
// surfaced before any network call is attempted.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable not set or missing in config")

const (
	defaultModel   = "gpt-5-nano"
	defaultBaseURL = "https://api.openai.com/v1"

	// Fixed output budget, shared by every request kind.
	defaultMaxCompletionTokens = 4000
)

// Config holds the resolved settings for the AI features. It is built once at
// startup and passed by value to whichever component needs it.
type Config struct {
	AIEnabled           bool
	APIKey              string
	Model               string
	BaseURL             string
	MaxCompletionTokens int
}

// fileConfig mirrors the on-disk shape. Pointer and zero-value checks keep
// absent keys from clobbering defaults.
type fileConfig struct {
	AIEnabled *bool  `json:"ai_enabled" yaml:"ai_enabled"`
	APIKey    string `json:"openai_api_key" yaml:"openai_api_key"`
	Model     string `json:"openai_model" yaml:"openai_model"`
	BaseURL   string `json:"openai_base_url" yaml:"openai_base_url"`
}

// Load resolves settings with environment variables overriding the config
// file overriding hard-coded defaults. A missing or unreadable config file is
// not an error; defaults win.
func Load() Config {
	cfg := Config{
		AIEnabled:           true,
		Model:               defaultModel,
		BaseURL:             defaultBaseURL,
		MaxCompletionTokens: defaultMaxCompletionTokens,
	}
	applyFile(&cfg)
	applyEnv(&cfg)
	return cfg
}

// Validate reports the one fatal configuration error: no API key anywhere.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// DefaultPath returns the JSON config file location under the user config
// directory (XDG_CONFIG_HOME on Unix, AppData on Windows).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "critica", "config.json"), nil
}

func applyFile(cfg *Config) {
	path, err := DefaultPath()
	if err != nil {
		return
	}

	var fc fileConfig
	if data, err := os.ReadFile(path); err == nil {
		if json.Unmarshal(data, &fc) != nil {
			return
		}
	} else {
		// YAML alternative next to the JSON default.
		yamlPath := filepath.Join(filepath.Dir(path), "config.yaml")
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return
		}
		if yaml.Unmarshal(data, &fc) != nil {
			return
		}
	}

	if fc.AIEnabled != nil {
		cfg.AIEnabled = *fc.AIEnabled
	}
	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
}

// Save writes the configuration back to the JSON file. The API key is only
// persisted when it did not come from the environment.
func Save(cfg Config) error {
	path, err := DefaultPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	out := map[string]any{
		"ai_enabled":      cfg.AIEnabled,
		"openai_model":    cfg.Model,
		"openai_base_url": cfg.BaseURL,
	}
	if cfg.APIKey != "" && os.Getenv("OPENAI_API_KEY") == "" {
		out["openai_api_key"] = cfg.APIKey
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
