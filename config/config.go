// Package config loads and validates server configuration from a YAML/JSON
// file with FCS_-prefixed environment overrides. A local .env file, when
// present, is loaded first.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"function-server/llm/functions"
)

// Config contains all configuration for the function-calling server.
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Backend   BackendConfig    `mapstructure:"backend" validate:"required"`
	Functions []FunctionConfig `mapstructure:"functions" validate:"dive"`
	LogLevel  string           `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string `mapstructure:"address" validate:"required"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds" validate:"min=0,max=300"`
}

// BackendConfig selects and configures the model backend.
type BackendConfig struct {
	Name    string `mapstructure:"name" validate:"required,oneof=ollama vllm openai"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	// ToolFormat overrides the backend's default tool rendering
	// (json, xml or native). Empty keeps the backend default.
	ToolFormat     string `mapstructure:"tool_format" validate:"omitempty,oneof=json xml native"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=0,max=3600"`
	RetryMax       int    `mapstructure:"retry_max" validate:"min=0,max=10"`
}

// Timeout returns the backend call timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// FunctionConfig describes one registered function in the config file.
// Parameters is decoded as a generic map and canonicalized to JSON once at
// load time, so the schema bytes stay identical across requests.
type FunctionConfig struct {
	Name        string         `mapstructure:"name" validate:"required"`
	Description string         `mapstructure:"description"`
	Parameters  map[string]any `mapstructure:"parameters"`
}

// Spec converts a configured function into a registrable spec.
func (f FunctionConfig) Spec() (functions.FunctionSpec, error) {
	spec := functions.FunctionSpec{
		Name:        f.Name,
		Description: f.Description,
	}
	if f.Parameters == nil {
		spec.Parameters = json.RawMessage(`{"type":"object","properties":{}}`)
		return spec, nil
	}
	data, err := json.Marshal(f.Parameters)
	if err != nil {
		return functions.FunctionSpec{}, fmt.Errorf("function %s: invalid parameters: %w", f.Name, err)
	}
	spec.Parameters = data
	return spec, nil
}

// Default returns the default configuration: an Ollama backend on localhost
// and the built-in function set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ShutdownSeconds: 5,
		},
		Backend: BackendConfig{
			Name:           "ollama",
			BaseURL:        "http://localhost:11434",
			TimeoutSeconds: 30,
			RetryMax:       0,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the given file path (optional) and the
// environment, validates it and returns the result.
func Load(path string) (*Config, error) {
	// Ignore a missing .env; it is a local development convenience.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("FCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("server.shutdown_seconds", defaults.Server.ShutdownSeconds)
	v.SetDefault("backend.name", defaults.Backend.Name)
	v.SetDefault("backend.base_url", defaults.Backend.BaseURL)
	v.SetDefault("backend.model", defaults.Backend.Model)
	v.SetDefault("backend.api_key", defaults.Backend.APIKey)
	v.SetDefault("backend.tool_format", defaults.Backend.ToolFormat)
	v.SetDefault("backend.timeout_seconds", defaults.Backend.TimeoutSeconds)
	v.SetDefault("backend.retry_max", defaults.Backend.RetryMax)
	v.SetDefault("log_level", defaults.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration, including function name uniqueness.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Functions))
	for _, fn := range c.Functions {
		if seen[fn.Name] {
			return fmt.Errorf("duplicate function name in config: %s", fn.Name)
		}
		seen[fn.Name] = true
	}
	return nil
}

// Specs returns the function specs to register: the configured set, or the
// built-in set when the config names none.
func (c *Config) Specs() ([]functions.FunctionSpec, error) {
	if len(c.Functions) == 0 {
		return functions.DefaultSpecs(), nil
	}
	specs := make([]functions.FunctionSpec, 0, len(c.Functions))
	for _, fn := range c.Functions {
		spec, err := fn.Spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
