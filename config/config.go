// Package config loads application configuration from YAML files and .env
// environment files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s"
// or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts to a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ProviderConfig configures one model provider.
type ProviderConfig struct {
	// Type selects the provider implementation: "openai", "anthropic", "mock".
	Type string `yaml:"type"`
	// Model is the provider-specific model identifier.
	Model string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv  string   `yaml:"api_key_env"`
	Timeout    Duration `yaml:"timeout"`
	MaxRetries int      `yaml:"max_retries"`
}

// APIKey resolves the provider's API key from the environment.
func (p ProviderConfig) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// AgentConfig configures one agent.
type AgentConfig struct {
	Name                   string   `yaml:"name"`
	Provider               string   `yaml:"provider"`
	ExecutionTimeout       Duration `yaml:"execution_timeout"`
	MaxConsecutiveFailures int      `yaml:"max_consecutive_failures"`
	Domain                 string   `yaml:"domain"`
	Capabilities           []string `yaml:"capabilities"`
}

// Config is the root application configuration.
type Config struct {
	LogLevel  string                    `yaml:"log_level"`
	LogFormat string                    `yaml:"log_format"`
	Debug     bool                      `yaml:"debug"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	Agents    map[string]AgentConfig    `yaml:"agents"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{
		LogLevel:  "info",
		LogFormat: "text",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	for name, p := range c.Providers {
		if p.Type == "" {
			return fmt.Errorf("provider %q: missing type", name)
		}
		switch p.Type {
		case "openai", "anthropic", "mock":
		default:
			return fmt.Errorf("provider %q: unknown type %q", name, p.Type)
		}
	}
	for name, a := range c.Agents {
		if a.Provider == "" {
			continue
		}
		if _, ok := c.Providers[a.Provider]; !ok {
			return fmt.Errorf("agent %q: unknown provider %q", name, a.Provider)
		}
	}
	return nil
}

// Provider returns the named provider configuration.
func (c *Config) Provider(name string) (ProviderConfig, bool) {
	p, ok := c.Providers[name]
	return p, ok
}

// Agent returns the named agent configuration.
func (c *Config) Agent(name string) (AgentConfig, bool) {
	a, ok := c.Agents[name]
	return a, ok
}

// LoadEnv loads environment variables from the given .env files without
// overriding variables already set in the process environment. Missing
// files are skipped so a checked-in app can run without a local .env.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}
