package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"input": "targets.csv",
		"output": "out.csv",
		"base_url": "https://www.linkedin.com",
		"workers": 2,
		"target_delay_ms": 3000
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "targets.csv", cfg.Input)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 3000, cfg.TargetDelayMs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	assert.Error(t, (&Config{BaseURL: "not a url"}).Validate())
	assert.Error(t, (&Config{Workers: 99}).Validate())
	assert.Error(t, (&Config{ReadyTimeoutMs: 5}).Validate())
	assert.NoError(t, (&Config{Workers: 4, BaseURL: "https://example.com"}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Input: "mine.csv"}
	defaults := Config{Input: "theirs.csv", Output: "out.csv", Workers: 1, TargetDelayMs: 3000}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine.csv", merged.Input, "explicit value wins over default")
	assert.Equal(t, "out.csv", merged.Output)
	assert.Equal(t, 1, merged.Workers)
	assert.Equal(t, 3000, merged.TargetDelayMs)
}

func TestLoadConfig_HeadlessDistinguishesUnsetFromFalse(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"headless": false}`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Headless)
	assert.False(t, *cfg.Headless)

	cfg, err = LoadConfig(writeConfig(t, `{"input": "targets.csv"}`))
	require.NoError(t, err)
	assert.Nil(t, cfg.Headless, "omitted headless stays unset")
}

func TestMergeWithDefaults_HeadlessExplicitFalseSurvives(t *testing.T) {
	off := false
	cfg := Config{Headless: &off}

	merged := cfg.MergeWithDefaults(Config{Workers: 1})
	require.NotNil(t, merged.Headless)
	assert.False(t, *merged.Headless)

	empty := Config{}
	merged = empty.MergeWithDefaults(Config{Workers: 1})
	assert.Nil(t, merged.Headless)
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvIdentifier, "user@example.com")
	t.Setenv(EnvSecret, "hunter2")

	id, secret, err := CredentialsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", id)
	assert.Equal(t, "hunter2", secret)
}

func TestCredentialsFromEnv_Missing(t *testing.T) {
	t.Setenv(EnvIdentifier, "")
	t.Setenv(EnvSecret, "")

	_, _, err := CredentialsFromEnv()
	assert.Error(t, err)
}
