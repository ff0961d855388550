package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// appName is the single source of truth for the application name.
// Env var names and config paths are derived from it.
const appName = "heres"

const configFileName = "config.yml"

var (
	envPrefix    = strings.ToUpper(appName)
	envConfigDir = envPrefix + "_CONFIG_DIR"
)

// Defaults written by `config init` and used when no file exists.
const (
	defaultBaseURL     = "http://localhost:3000/api"
	defaultYouthCenter = "Centro Juvenil HERES"
	defaultTimeout     = 30 * time.Second
	defaultLogLevel    = "warn"
)

// Config is the effective client configuration.
type Config struct {
	// BaseURL is the root of the HERES REST API, without trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// YouthCenter is sent with every registration; members cannot change it.
	YouthCenter string `mapstructure:"youth_center" yaml:"youth_center"`
	// Timeout bounds each API request. Zero waits forever.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Token is the bearer token for authenticated calls (password change).
	Token string `mapstructure:"token" yaml:"token,omitempty"`
}

func defaultConfig() Config {
	return Config{
		BaseURL:     defaultBaseURL,
		YouthCenter: defaultYouthCenter,
		Timeout:     defaultTimeout,
		LogLevel:    defaultLogLevel,
	}
}

// resolveConfigDir returns the base config directory for the application.
// Priority: $HERES_CONFIG_DIR > $XDG_CONFIG_HOME/heres > ~/.config/heres
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveConfigFile returns flagPath when set, the default config file otherwise.
func resolveConfigFile(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	dir, err := resolveConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig layers defaults, the YAML file at path (if it exists) and
// HERES_* environment variables, in that order.
// An explicitly given path that does not exist is an error.
func loadConfig(path string, required bool) (*Config, error) {
	v := viper.New()
	def := defaultConfig()
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("youth_center", def.YouthCenter)
	v.SetDefault("timeout", def.Timeout.String())
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("token", "")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
		} else if required || !os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url must be set (config file or $%s_BASE_URL)", envPrefix)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: base_url %q is not an http(s) URL", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative")
	}
	if strings.TrimSpace(c.YouthCenter) == "" {
		return fmt.Errorf("config: youth_center must be set")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
