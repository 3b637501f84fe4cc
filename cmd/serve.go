package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/libroteca/librocli/internal/mockapi"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port     string
		secret   string
		tokenTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the seeded demo catalog backend",
		Long: `Starts an in-memory catalog backend seeded with demo data.

It serves the same REST surface the console speaks: token sign-in,
paginated libro listing, admin-only CRUD, user listing and the service
resource document. Two demo accounts are preloaded, one regular user
and one admin. All data lives in memory and is lost on shutdown.`,
		Example: `  # Start the demo backend on the default port
  librocli serve

  # Start on a custom port with a fixed signing secret
  librocli serve --port 3000 --secret my-dev-secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []mockapi.Option{mockapi.WithTokenTTL(tokenTTL)}
			if secret != "" {
				opts = append(opts, mockapi.WithSecret(secret))
			}

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mockapi.NewServer(opts...),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Demo catalog backend available", "addr", addr, "url", "http://localhost"+addr)
				slog.Info("Demo accounts", "user", mockapi.DemoUserEmail, "admin", mockapi.DemoAdminEmail)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret used to sign tokens (random when empty)")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", time.Hour, "Lifetime of issued tokens")

	return cmd
}
