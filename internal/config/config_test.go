package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ROBODIR_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	require.Equal(t, time.Duration(0), cfg.API.Timeout)
	require.Equal(t, OnFetchErrorEmpty, cfg.UI.OnFetchError)
	require.Equal(t, TabStudents, cfg.UI.StartTab)
	require.Equal(t, filepath.Join(home, ".local", "state", "robodir", "robodir.log"), cfg.Log.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Metrics.Addr)
	require.Equal(t, ":8089", cfg.MockAPI.Addr)
	require.Zero(t, cfg.MockAPI.Generate)
	require.Equal(t, int64(1), cfg.MockAPI.Seed)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[api]
base_url = "http://localhost:9000"
timeout = "3s"

[ui]
on_fetch_error = "error"
start_tab = "courses"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("ROBODIR_CONFIG", path)
	t.Setenv("ROBODIR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.Equal(t, OnFetchErrorShow, cfg.UI.OnFetchError)
	require.Equal(t, TabCourses, cfg.UI.StartTab)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsUnknownFetchErrorPolicy(t *testing.T) {
	isolate(t)
	t.Setenv("ROBODIR_UI_ON_FETCH_ERROR", "retry")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ui.on_fetch_error")
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	isolate(t)
	t.Setenv("ROBODIR_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidateNamesOffendingKey(t *testing.T) {
	base := Config{
		API: APIConfig{BaseURL: DefaultBaseURL},
		UI:  UIConfig{OnFetchError: OnFetchErrorEmpty, StartTab: TabStudents},
	}
	require.NoError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"start tab", func(c *Config) { c.UI.StartTab = "grades" }, `ui.start_tab: unknown value "grades"`},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url: must not be empty"},
		{"relative base url", func(c *Config) { c.API.BaseURL = "robotics-api" }, "api.base_url"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }, "api.timeout: must not be negative"},
		{"negative generate", func(c *Config) { c.MockAPI.Generate = -1 }, "mockapi.generate: must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}
