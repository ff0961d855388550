package main

import (
	"heres-tools/pkg/lib"
)

// Shared flags, bound to the root persistent flags so all subcommands inherit them.
var (
	flagConfig  string
	flagBaseURL string
	flagVerbose bool
)

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file (default: ~/.config/"+appName+"/"+configFileName+")")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "",
		"API base URL (overrides base_url and $"+envPrefix+"_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log requests and responses to stderr")

	rootCmd.AddCommand(newRegisterCommand())
	rootCmd.AddCommand(newActivateCommand())
	rootCmd.AddCommand(newPasswordCommand())
	rootCmd.AddCommand(privacyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		lib.Exit(err)
	}
}
