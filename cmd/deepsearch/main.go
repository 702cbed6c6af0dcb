package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/deepsearch/internal/cli"
	"github.com/cloo-solutions/deepsearch/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "deepsearch",
		Short: "Find directly downloadable files on the web",
		Long: `Deep search CLI queries a deepsearchd server for files of a given type.

Environment variables:
  DEEPSEARCH_API_URL   API base URL (default: http://localhost:8080)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.SearchCmd())

	if wrote, err := cli.WriteHelpJSON(os.Stdout, rootCmd, os.Args[1:]); wrote {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
