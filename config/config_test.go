package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
log_level: debug
log_format: json
debug: true
providers:
  main:
    type: openai
    model: gpt-4o-mini
    api_key_env: OPENAI_API_KEY
    timeout: 30s
    max_retries: 3
  test:
    type: mock
agents:
  researcher:
    name: Researcher
    provider: main
    execution_timeout: 5m
    max_consecutive_failures: 2
    domain: research
    capabilities: [web search, summarization]
`

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Debug)

	p, ok := cfg.Provider("main")
	require.True(t, ok)
	assert.Equal(t, "openai", p.Type)
	assert.Equal(t, "gpt-4o-mini", p.Model)
	assert.Equal(t, 30*time.Second, p.Timeout.Std())
	assert.Equal(t, 3, p.MaxRetries)

	a, ok := cfg.Agent("researcher")
	require.True(t, ok)
	assert.Equal(t, "main", a.Provider)
	assert.Equal(t, 5*time.Minute, a.ExecutionTimeout.Std())
	assert.Equal(t, 2, a.MaxConsecutiveFailures)
	assert.Equal(t, []string{"web search", "summarization"}, a.Capabilities)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParse_MissingProviderType(t *testing.T) {
	_, err := Parse([]byte("providers:\n  bad: {model: x}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing type")
}

func TestParse_UnknownProviderType(t *testing.T) {
	_, err := Parse([]byte("providers:\n  bad: {type: cohere}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestParse_AgentReferencesUnknownProvider(t *testing.T) {
	_, err := Parse([]byte("agents:\n  a: {name: A, provider: ghost}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown provider "ghost"`)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Providers, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestProviderConfig_APIKey(t *testing.T) {
	t.Setenv("CORTEXAI_TEST_KEY", "sk-123")
	p := ProviderConfig{APIKeyEnv: "CORTEXAI_TEST_KEY"}
	assert.Equal(t, "sk-123", p.APIKey())
	assert.Empty(t, ProviderConfig{}.APIKey())
}

func TestLoadEnv_SkipsMissingAndKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("FROM_FILE=yes\nALREADY_SET=file\n"), 0o644))

	t.Setenv("ALREADY_SET", "process")
	t.Setenv("FROM_FILE", "")
	os.Unsetenv("FROM_FILE")

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), envPath))
	assert.Equal(t, "yes", os.Getenv("FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("ALREADY_SET"))
}
