package main

import (
	"strings"

	"github.com/conetlab/conet/internal/author"
	"github.com/conetlab/conet/internal/service"
	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchExact bool
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().BoolVar(&searchExact, "exact", false, "Keep only results whose name matches the query (last name exact, first name prefix)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search OpenAlex authors by name",
	Long: `Search authors by display name.

The query is sent to OpenAlex as-is. With --exact, results are additionally
filtered locally: the last word of the query must match the author's last
name exactly and the first word (if any) must be a prefix of the first name,
so "Tim Smith" matches "Timothy Smith" but not "Tim Smithson".

Examples:
  conet search "lovelace"
  conet search "Erick Matsen" --exact
  conet search "curie" --limit 3 --human`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api, cleanup := mustAPI()
		defer cleanup()

		query := args[0]
		results, err := api.SearchAuthors(cmd.Context(), query, searchLimit)
		if err != nil {
			exitWithAPIError(err)
		}

		if searchExact {
			results = filterExact(results, query)
		}
		if searchLimit > 0 && len(results) > searchLimit {
			results = results[:searchLimit]
		}

		if humanOutput {
			if len(results) == 0 {
				outputHuman("No results.\n")
				return
			}
			headingColor.Printf("Authors matching %q:\n", query)
			printAuthorsHuman(results)
			return
		}
		if err := outputJSON(searchResponse{Results: results}); err != nil {
			exitWithError(ExitError, "encoding output: %v", err)
		}
	},
}

type searchResponse struct {
	Results []service.AuthorResult `json:"results"`
}

// filterExact keeps results whose display name matches the query under the
// name-matching rules of the author package.
func filterExact(results []service.AuthorResult, query string) []service.AuthorResult {
	q := author.ParseQuery(strings.TrimSpace(query))
	if q.IsZero() {
		return results
	}
	kept := make([]service.AuthorResult, 0, len(results))
	for _, r := range results {
		if q.MatchesName(r.DisplayName) {
			kept = append(kept, r)
		}
	}
	return kept
}
