package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/churnguard/internal/cli"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the feature schema",
	Long: `Show the ordered feature list the server's model was trained on.

Examples:
  churnctl schema
  churnctl schema --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		s, err := c.Schema(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get schema: %w", err)
		}

		if quiet {
			return nil
		}
		if outputFormat() == cli.FormatTable {
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %s\n", s.Version)
		}
		return cli.PrintSchema(cmd.OutOrStdout(), s, outputFormat())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
