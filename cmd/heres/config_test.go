package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BASE_URL", "YOUTH_CENTER", "TIMEOUT", "LOG_LEVEL", "TOKEN", "CONFIG_DIR"} {
		t.Setenv(envPrefix+"_"+k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"), false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), *cfg)
}

func TestLoadConfig_MissingRequiredFile(t *testing.T) {
	clearEnv(t)
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"), true)
	assert.Error(t, err)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(
		"base_url: https://heres.example.org/api/\n"+
			"youth_center: Centro Juvenil Don Bosco\n"+
			"timeout: 5s\n"+
			"log_level: info\n"), 0o600))

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "https://heres.example.org/api", cfg.BaseURL)
	assert.Equal(t, "Centro Juvenil Don Bosco", cfg.YouthCenter)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)

	t.Setenv("HERES_BASE_URL", "http://localhost:8080")
	t.Setenv("HERES_TOKEN", "secret")
	cfg, err = loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.Token)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty base url":   "base_url: \"\"\n",
		"not http":         "base_url: ftp://example.org\n",
		"negative timeout": "timeout: -1s\n",
		"bad log level":    "log_level: loud\n",
		"no youth center":  "youth_center: \"  \"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), configFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := loadConfig(path, true)
			assert.Error(t, err)
		})
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", configFileName)
	cfg := defaultConfig()
	cfg.BaseURL = "https://heres.example.org/api"

	require.NoError(t, writeConfigFile(path, cfg, false))
	assert.Error(t, writeConfigFile(path, cfg, false), "refuses to overwrite")
	require.NoError(t, writeConfigFile(path, cfg, true))

	got, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)
}

func TestResolveConfigDir(t *testing.T) {
	t.Setenv(envConfigDir, "/tmp/heres-conf")
	dir, err := resolveConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/heres-conf", dir)

	t.Setenv(envConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = resolveConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", appName), dir)
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "warn", "", "error"} {
		_, err := parseLevel(s)
		assert.NoError(t, err, s)
	}
	_, err := parseLevel("trace")
	assert.Error(t, err)
}
