package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find directly downloadable files",
		Long:  "Searches the web for files of the given extension and lists only links that serve the file itself.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			resp, err := api.DeepSearch(cmd.Context(), args[0], ext)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			return printResults(cmd.OutOrStdout(), resp, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", "", "File extension to look for (e.g. pdf, zip, png)")
	_ = cmd.MarkFlagRequired("ext")

	return cmd
}

func printResults(w io.Writer, resp *SearchResponse, outputJSON bool) error {
	if outputJSON {
		output, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Fprintln(w, string(output))
		return nil
	}

	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No downloadable files found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d files:\n\n", len(resp.Results))
	for i, result := range resp.Results {
		fmt.Fprintf(w, "%d. %s\n", i+1, result.Title)
		fmt.Fprintf(w, "   %s\n", result.URL)
		details := []string{formatSize(result.Size)}
		if result.ContentType != "" {
			details = append(details, result.ContentType)
		}
		fmt.Fprintf(w, "   %s\n", strings.Join(details, ", "))
		if i < len(resp.Results)-1 {
			fmt.Fprintln(w, strings.Repeat("-", 40))
		}
	}
	return nil
}

func formatSize(n int64) string {
	if n <= 0 {
		return "unknown size"
	}
	return humanize.IBytes(uint64(n))
}
