package main

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed privacy.md
var privacyText string

var privacyCmd = &cobra.Command{
	Use:   "privacy",
	Short: "Show the privacy policy accepted on registration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			_, err := fmt.Fprint(cmd.OutOrStdout(), privacyText)
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), styleDocument.Render(privacyText))
		return err
	},
}

func init() {
	privacyCmd.Flags().Bool("raw", false, "print the text without styling")
}
