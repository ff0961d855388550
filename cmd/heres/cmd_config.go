package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configInitHeader = "# heres client configuration\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n" +
	"# Every key can be overridden with an environment variable: HERES_<KEY>,\n" +
	"# e.g. HERES_BASE_URL. `heres config show` prints the effective values.\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n\n"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the " + appName + " config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: "Create the config directory and write a config file with the default\n" +
		"values, or --base-url when given. The default location follows:\n" +
		"  $HERES_CONFIG_DIR > $XDG_CONFIG_HOME/heres > ~/.config/heres",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, err := resolveConfigFile(flagConfig)
		if err != nil {
			return err
		}
		cfg := defaultConfig()
		if flagBaseURL != "" {
			cfg.BaseURL = flagBaseURL
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		if err := writeConfigFile(path, cfg, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "initialised %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigFile(flagConfig)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(path, flagConfig != "")
		if err != nil {
			return err
		}
		if flagBaseURL != "" {
			cfg.BaseURL = flagBaseURL
		}
		if cfg.Token != "" {
			cfg.Token = "********"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	},
}

// writeConfigFile marshals cfg to path, refusing to overwrite unless force.
func writeConfigFile(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	content := append([]byte(configInitHeader), data...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
}
