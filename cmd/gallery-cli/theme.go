package main

import (
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show the server's theme suggestion",
	Args:  cobra.NoArgs,
	RunE:  runTheme,
}

func runTheme(cmd *cobra.Command, _ []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Theme(cmd.Context())
	if err != nil {
		return err
	}

	return getFormatter().FormatTheme(cmd.OutOrStdout(), result)
}
