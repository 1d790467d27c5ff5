package main

import (
	"github.com/conetlab/conet/internal/config"
	"github.com/conetlab/conet/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the local author cache",
}

// mustOpenCache opens the SQLite author cache from config, exits on error.
func mustOpenCache() (*storage.DB, config.Config) {
	cfg := mustLoadConfig()
	db, err := storage.OpenDB(cfg.Cache.Path)
	if err != nil {
		exitWithError(ExitError, "opening author cache: %v", err)
	}
	db.SetTTL(cfg.Cache.TTL.Std())
	return db, cfg
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and entry count",
	Run: func(cmd *cobra.Command, args []string) {
		db, cfg := mustOpenCache()
		defer db.Close()

		n, err := db.Count(cmd.Context())
		if err != nil {
			exitWithError(ExitError, "counting entries: %v", err)
		}

		if humanOutput {
			outputHuman("Path:    %s\n", cfg.Cache.Path)
			outputHuman("TTL:     %s\n", cfg.Cache.TTL.Std())
			outputHuman("Entries: %d\n", n)
			return
		}
		_ = outputJSON(struct {
			Path    string `json:"path"`
			TTL     string `json:"ttl"`
			Entries int    `json:"entries"`
		}{cfg.Cache.Path, cfg.Cache.TTL.Std().String(), n})
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cache entries",
	Run: func(cmd *cobra.Command, args []string) {
		db, _ := mustOpenCache()
		defer db.Close()

		n, err := db.Purge(cmd.Context())
		if err != nil {
			exitWithError(ExitError, "purging cache: %v", err)
		}

		if humanOutput {
			outputHuman("Removed %d expired entries.\n", n)
			return
		}
		_ = outputJSON(struct {
			Removed int `json:"removed"`
		}{n})
	},
}
