package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/deepsearch/internal/cli"
	"github.com/cloo-solutions/deepsearch/internal/cli/daemon"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deepsearchd",
		Short: "Deep search API server",
		Long: `Deep search daemon serving GET /api/deep-search.

Environment variables:
  DEEPSEARCH_SEARCH_API_KEY   Search provider API key (required)
  DEEPSEARCH_SEARCH_CX        Search engine id (required)
  DEEPSEARCH_REDIS_ADDR       Enables the result cache when set
  DEEPSEARCH_SENTRY_DSN       Enables Sentry tracing when set`,
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(daemon.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if wrote, err := cli.WriteHelpJSON(os.Stdout, rootCmd, os.Args[1:]); wrote {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
