// Package main provides the conet CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/conetlab/conet/internal/client"
	"github.com/conetlab/conet/internal/config"
	"github.com/conetlab/conet/internal/graph"
	"github.com/conetlab/conet/internal/logging"
	"github.com/conetlab/conet/internal/openalex"
	"github.com/conetlab/conet/internal/service"
	"github.com/conetlab/conet/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// remoteURL, when set, routes queries through a running conet server
// instead of talking to OpenAlex directly.
var remoteURL string

// configPath overrides the default config file location.
var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "conet",
	Short: "Co-authorship network explorer for OpenAlex",
	Long: `conet explores co-authorship networks built from OpenAlex data.

Core features:
  - Author search by name
  - Co-authorship graphs around an author (breadth-first, bounded)
  - Shortest co-author chains between two authors
  - Self-contained HTML exports and an interactive web viewer

Author details are cached in SQLite so repeat queries stay cheap.
All commands output JSON by default for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "Base URL of a running conet server to query instead of OpenAlex")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/conet/config.yml)")
	rootCmd.Version = Version
}

// graphAPI is the query surface shared by the local service and the remote
// server client.
type graphAPI interface {
	SearchAuthors(ctx context.Context, query string, limit int) ([]service.AuthorResult, error)
	Graph(ctx context.Context, authorID string, depth, maxNodes int) (*graph.Graph, error)
	ShortestPath(ctx context.Context, authorA, authorB string) (*service.PathResult, error)
	Author(ctx context.Context, authorID string) (graph.AuthorDetails, error)
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustAPI builds the query backend: a remote client when --remote is set,
// otherwise a local service talking to OpenAlex with a SQLite author cache.
// The caller must invoke the returned cleanup function.
func mustAPI() (graphAPI, func()) {
	if remoteURL != "" {
		return client.New(remoteURL), func() {}
	}

	cfg := mustLoadConfig()
	logger := logging.New(cfg.Logging)

	var opts []openalex.ClientOption
	if cfg.OpenAlex.Mailto != "" {
		opts = append(opts, openalex.WithMailto(cfg.OpenAlex.Mailto))
	}
	if cfg.OpenAlex.BaseURL != "" {
		opts = append(opts, openalex.WithBaseURL(cfg.OpenAlex.BaseURL))
	}
	oa := openalex.NewClient(opts...)

	db, err := storage.OpenDB(cfg.Cache.Path)
	if err != nil {
		// Degrade to uncached queries rather than failing the command.
		logger.Warn("opening author cache", "path", cfg.Cache.Path, "error", err)
		return service.New(logger, oa, nil, cfg.Graph.PathMaxExpansions), func() {}
	}
	db.SetTTL(cfg.Cache.TTL.Std())

	svc := service.New(logger, oa, db, cfg.Graph.PathMaxExpansions)
	return svc, func() { _ = db.Close() }
}
