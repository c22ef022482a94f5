package main

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up",
	Long: `Call GET /api/health and print the status and version.

Exits non-zero if the server cannot be reached or does not answer 200.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, _ []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Health(cmd.Context())
	if err != nil {
		return err
	}

	return getFormatter().FormatHealth(cmd.OutOrStdout(), result)
}
