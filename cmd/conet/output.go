package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/conetlab/conet/internal/client"
	"github.com/conetlab/conet/internal/openalex"
	"github.com/conetlab/conet/internal/service"
	"github.com/fatih/color"
)

// DefaultSearchLimit is the default limit for the search command.
const DefaultSearchLimit = 10

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	idColor      = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	return writeJSONTo(os.Stdout, v)
}

// writeJSONTo writes a value as formatted JSON to w.
func writeJSONTo(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		_ = outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithAPIError classifies an API failure into an exit code before exiting.
func exitWithAPIError(err error) {
	code := ExitAPIError
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		code = ExitError
	case openalex.IsNotFound(err):
		code = ExitNotFound
	case errors.Is(err, client.ErrServer):
		var se *client.StatusError
		if errors.As(err, &se) && se.StatusCode == 404 {
			code = ExitNotFound
		}
	}
	exitWithError(code, "%v", err)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// printAuthorsHuman prints author search results in human-readable format.
func printAuthorsHuman(results []service.AuthorResult) {
	for i, r := range results {
		fmt.Printf("%d. %s  %s\n", i+1, idColor.Sprint(r.ShortID), truncateString(r.DisplayName, 60))
		inst := r.Institution
		if inst == "" {
			inst = "unknown institution"
		}
		works := "? works"
		if r.WorksCount > 0 {
			works = fmt.Sprintf("%d works", r.WorksCount)
		}
		fmt.Printf("   %s\n", dimColor.Sprintf("%s, %s", inst, works))
	}
}
