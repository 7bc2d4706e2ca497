package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9000
  timeout: 5s
model:
  path: /srv/model.json
ui:
  theme: clinical
cache:
  size: 0
`)
	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Http.Port)
	assert.Equal(t, 5*time.Second, cfg.Http.Timeout)
	assert.Equal(t, "/srv/model.json", cfg.Model.Path)
	assert.Equal(t, "auto", cfg.Model.Type)
	assert.Equal(t, "clinical", cfg.UI.Theme)
	assert.Equal(t, 0, cfg.Cache.Size)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")

	cfg, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, Default().Model.Path, cfg.Model.Path)

	_, err = Load(missing, false)
	assert.Error(t, err)
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	t.Setenv(ModelPathEnv, "")
	for name, body := range map[string]string{
		"empty":        "",
		"comment only": "# nothing configured yet\n",
	} {
		cfg, err := Load(writeConfig(t, body), false)
		require.NoError(t, err, name)
		assert.Equal(t, Default(), cfg, name)
	}
}

func TestLoadModelPathFromEnv(t *testing.T) {
	t.Setenv(ModelPathEnv, "/tmp/other.json")

	cfg, err := Load(writeConfig(t, "model:\n  path: models/model.json\n"), false)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.json", cfg.Model.Path)
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"port":  "http:\n  port: 70000\n",
		"theme": "ui:\n  theme: neon\n",
		"level": "log:\n  level: trace\n",
		"cache": "cache:\n  size: -1\n",
	}
	for name, body := range cases {
		_, err := Load(writeConfig(t, body), false)
		assert.Error(t, err, name)
	}
}
