package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/libroteca/librocli/internal/api"
	"github.com/libroteca/librocli/internal/config"
	"github.com/libroteca/librocli/internal/console"
	"github.com/spf13/cobra"
)

func newConsoleCmd() *cobra.Command {
	var (
		apiURL   string
		timeout  time.Duration
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive catalog console",
		Long: `Opens an interactive console against the catalog backend.

Sign in with "login <email> <password>". The roles carried by the issued
token decide what you get: regular users browse the paginated catalog,
admins additionally create, edit and delete libros and can inspect the
registered users and the service resource document.`,
		Example: `  # Connect to the default backend
  librocli console

  # Connect to a specific backend
  librocli console --api https://libros.example.com

  # Try it against the bundled demo backend
  librocli serve &
  librocli console --api http://localhost:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api") {
				cfg.APIURL = apiURL
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			if cmd.Flags().Changed("page-size") {
				cfg.PageSize = pageSize
			}

			slog.Debug("Starting console", "api", cfg.APIURL, "timeout", cfg.Timeout, "pageSize", cfg.PageSize)

			client := api.NewClient(cfg.APIURL, cfg.Timeout)
			ctrl := console.New(client, console.Options{
				Input:    os.Stdin,
				Output:   os.Stdout,
				PageSize: cfg.PageSize,
			})
			return ctrl.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", config.DefaultAPIURL, "Base URL of the catalog backend")
	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().IntVar(&pageSize, "page-size", config.DefaultPageSize, "Catalog page size")

	return cmd
}
