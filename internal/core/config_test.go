package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "Asia/Kolkata", cfg.DefaultTimezone)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout())
	assert.Equal(t, 30*time.Second, cfg.GoogleTimeout())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_SCHEMA_MODEL", "llama-test")
	t.Setenv("DEBUG", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "llama-test", cfg.LLM.SchemaModel)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("port: 9090\nenv: production\nllm:\n  api_key: from-file\n  timeout_seconds: 45\ngoogle:\n  client_id: cid\n  client_secret: secret\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("FORMFORGE_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "from-file", cfg.LLM.APIKey)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout())
	require.NoError(t, cfg.Validate())
}

func TestValidateProductionRequiresCredentials(t *testing.T) {
	cfg := &Config{Env: "production"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")

	cfg.LLM.APIKey = "sk-test"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")

	cfg.Google.ClientID = "cid"
	cfg.Google.ClientSecret = "secret"
	require.NoError(t, cfg.Validate())

	cfg.Env = "development"
	cfg.LLM.APIKey = ""
	require.NoError(t, cfg.Validate())
}
