package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authorCmd)
}

var authorCmd = &cobra.Command{
	Use:   "author <author-id>",
	Short: "Show resolved details for a single author",
	Long: `Fetch label, institution, and works count for one author.

The ID may be a short OpenAlex ID (A5023888391) or a full URL
(https://openalex.org/A5023888391).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		api, cleanup := mustAPI()
		defer cleanup()

		d, err := api.Author(cmd.Context(), args[0])
		if err != nil {
			exitWithAPIError(err)
		}

		if humanOutput {
			headingColor.Printf("%s\n", d.Label)
			outputHuman("  ID:          %s\n", idColor.Sprint(d.ID))
			if d.Institution != "" {
				outputHuman("  Institution: %s\n", d.Institution)
			}
			if d.WorksCount > 0 {
				outputHuman("  Works:       %d\n", d.WorksCount)
			}
			if d.URL != "" {
				outputHuman("  URL:         %s\n", d.URL)
			}
			return
		}

		out := struct {
			ID          string `json:"id"`
			Label       string `json:"label"`
			Institution string `json:"institution,omitempty"`
			WorksCount  int    `json:"works_count,omitempty"`
			URL         string `json:"url,omitempty"`
		}{d.ID, d.Label, d.Institution, d.WorksCount, d.URL}
		if err := outputJSON(out); err != nil {
			exitWithError(ExitError, "encoding output: %v", err)
		}
	},
}
