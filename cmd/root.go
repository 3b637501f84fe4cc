package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "librocli",
		Short: "Terminal client for the libros catalog service",
		Long: `Librocli is a terminal client for the libros catalog REST API.

It signs in against the backend, derives the caller's roles from the
issued JWT, and opens either a read-only catalog browser or a full
administration console. A seeded demo backend is bundled for local use.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newConsoleCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
