package commands

import (
	"github.com/spf13/cobra"

	"github.com/TimurManjosov/churnguard/internal/cli"
	"github.com/TimurManjosov/churnguard/internal/client"
)

var (
	// Global flags
	baseURL string
	format  string
	quiet   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "churnctl",
	Short: "CLI tool for scoring customer churn risk",
	Long: `churnctl talks to a running churnguard server.

It scores a customer through the JSON API and prints the churn probability,
risk tier and business notes, or shows the feature schema the model expects.

Examples:
  churnctl predict --gender Female --tenure 2 --monthly-charges 95 --contract Month-to-month
  churnctl predict --format json
  churnctl schema --format yaml
  churnctl config init`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the churnguard server")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
}

// newClient builds an API client from flags, environment and config file.
func newClient() (*client.Client, error) {
	u, err := cli.ResolveBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return client.NewClient(u), nil
}

// outputFormat is --format, then the config file format, then table.
func outputFormat() cli.OutputFormat {
	if format != "" {
		return cli.OutputFormat(format)
	}
	if cfg, err := cli.LoadConfig(); err == nil && cfg.Format != "" {
		return cli.OutputFormat(cfg.Format)
	}
	return cli.FormatTable
}
