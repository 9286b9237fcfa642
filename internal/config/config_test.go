package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalYAML = `Name: ideaforge-api
Host: 0.0.0.0
Port: 8888
`

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ideaforge.yaml", minimalYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.True(t, cfg.IsTestEnv())
	assert.Equal(t, 60, cfg.TTL.Short)
	assert.Equal(t, 600, cfg.TTL.Medium)
	assert.Equal(t, 3600, cfg.TTL.Long)
	assert.Equal(t, 86400, cfg.Session.TTLSeconds)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, dir, cfg.BaseDir())
	assert.Equal(t, path, cfg.MainPath())
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ideaforge.yaml", minimalYAML+"Env: staging\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env must be one of")
}

func TestLoadHydratesSections(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	dir := t.TempDir()
	writeFile(t, dir, "llm.yaml", "api_key: test-key\n")
	writeFile(t, dir, "advisor.yaml", "idea_count: 4\n")
	path := writeFile(t, dir, "ideaforge.yaml", minimalYAML+`Env: dev
LLM:
  File: llm.yaml
Advisor:
  File: advisor.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.IsTestEnv())

	require.NotNil(t, cfg.LLM.Value)
	assert.Equal(t, "test-key", cfg.LLM.Value.APIKey)
	assert.Equal(t, filepath.Join(dir, "llm.yaml"), cfg.LLM.File)

	require.NotNil(t, cfg.Advisor.Value)
	assert.Equal(t, 4, cfg.Advisor.Value.IdeaCount)
}

func TestLoadBrokenSectionFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ideaforge.yaml", minimalYAML+`LLM:
  File: missing-llm.yaml
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load llm config")
}

func TestValidateTTL(t *testing.T) {
	cfg := &Config{Env: "dev", TTL: CacheTTL{Short: 1, Medium: 1, Long: 0}, Session: SessionConf{TTLSeconds: 1}}
	assert.Error(t, cfg.Validate())

	cfg.TTL.Long = 10
	assert.NoError(t, cfg.Validate())

	cfg.Session.TTLSeconds = 0
	assert.Error(t, cfg.Validate())
}
