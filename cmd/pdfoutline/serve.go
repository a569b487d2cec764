package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pdfoutline/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve outline extraction over HTTP",
	Long: `Serve starts an HTTP server with a POST /api/extract endpoint accepting a
multipart PDF upload and returning its outline as JSON. Set
PDFOUTLINE_API_KEY to require bearer authentication.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := newLogger(cfg)

		srv := api.NewServer(newProcessor(cfg, log), log, cfg)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown.
		go func() {
			<-cmd.Context().Done()
			log.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting pdfoutline api", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}
