package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/conetlab/conet/internal/logging"
	"github.com/conetlab/conet/internal/openalex"
	"github.com/conetlab/conet/internal/server"
	"github.com/conetlab/conet/internal/service"
	"github.com/conetlab/conet/internal/storage"
	"github.com/spf13/cobra"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conet HTTP server and web viewer",
	Long: `Start the HTTP server: the JSON API plus the interactive viewer page.

Configuration comes from ~/.config/conet/config.yml (override with --config)
and environment variables (CONET_HOST, CONET_PORT, OPENALEX_MAILTO, ...).`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		if servePort > 0 {
			cfg.Server.Port = servePort
		}
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
			exitWithError(ExitError, "opening author cache: %v", err)
		}
		defer db.Close()
		db.SetTTL(cfg.Cache.TTL.Std())

		svc := service.New(logger, oa, db, cfg.Graph.PathMaxExpansions)
		handlers := server.NewAPIHandlers(logger, svc)
		router := server.NewRouter(logger, handlers, cfg.Server.AllowedOrigins)
		srv := server.New(logger, cfg.Server, router)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				exitWithError(ExitError, "server: %v", err)
			}
		case sig := <-stop:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				exitWithError(ExitError, "shutdown: %v", err)
			}
		}
	},
}
