// Command site serves the municipal website and its dashboard, and imports
// Markdown posts into the content API.
package main

import (
	"fmt"
	"os"

	site "github.com/goliatone/go-cms-site"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "site",
		Short:         "Municipal website server",
		Long:          `Serves the public municipal website and the content dashboard on top of the content API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(importPostsCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

// loadConfig loads configuration from the .env file and SITE_* variables.
func loadConfig(cmd *cobra.Command) (site.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := site.LoadConfig(envFile)
	if err != nil {
		return site.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
