package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/bluebook/internal/api"
	"github.com/dgallion1/bluebook/internal/pipeline"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API and the background outline indexer.

Configuration comes from the environment: PORT, BLUEBOOK_PDF_DIR,
BLUEBOOK_API_KEY, BLUEBOOK_SOURCES_FILE, WORKER_COUNT, MAX_QUEUE_SIZE,
JOB_TTL, FETCH_TIMEOUT, STATS_WINDOW, LOG_LEVEL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(os.Stdout)
			if err != nil {
				return err
			}
			log := e.log

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// Initialize pipeline.
			orch := pipeline.NewOrchestrator(e.cfg, e.svc, log)
			orch.Start(ctx)

			// Initialize HTTP server.
			srv := api.NewServer(e.svc, e.lib, orch, log, e.cfg)

			httpServer := &http.Server{
				Addr:         ":" + e.cfg.Port,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown.
			stopped := make(chan struct{})
			go func() {
				defer close(stopped)
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				log.Info("shutting down...")

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				httpServer.Shutdown(shutdownCtx)

				orch.Stop()
			}()

			log.Info("starting bluebook", "port", e.cfg.Port, "pdf_dir", e.cfg.PDFDir, "sources", len(e.sources))
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("server error", "error", err)
				return err
			}
			<-stopped
			return nil
		},
	}
}
