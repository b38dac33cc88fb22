package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	site "github.com/goliatone/go-cms-site"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. SITE_* environment variables
  4. Command line flags

Common variables:
  SITE_ADDR              Listen address (default: :8080)
  SITE_BACKEND_URL       Content API base URL (default: http://localhost:3000/api)
  SITE_MEDIA_BASE_URL    Prefix for uploaded media (default: /uploads)
  SITE_ADMIN_ENABLED     Mount the dashboard under /admin (default: false)
  SITE_SESSION_SECRET    Dashboard cookie secret, at least 32 bytes
  SITE_THEMES_DIR        go-theme manifest directory
  SITE_LOG_PROVIDER      console or gologger (default: console)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides SITE_ADDR")
	return cmd
}

func runServe(ctx context.Context, cfg site.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	module, err := site.New(cfg)
	if err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	return module.Serve(ctx)
}
