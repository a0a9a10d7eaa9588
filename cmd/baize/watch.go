package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	server "github.com/mhenders/baize/internal/http"
	"github.com/mhenders/baize/internal/metrics"
	"github.com/mhenders/baize/internal/projector"
)

var (
	watchInterval time.Duration
	watchSeed     int64
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh projections on a timer and serve them over HTTP",
	Long: `Watch runs the projector: every interval it rebuilds the standings,
re-simulates every division, recalibrates and saves fresh reports. The
results are served on /reports/latest alongside /standings, /lineup,
/health and prometheus /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetFormatter(log.JSONFormatter)

		if counters, err := runCounters.GetAll(); err == nil {
			log.Debug("Lifetime command counters loaded", "counters", counters)
		}

		metricsSvc := metrics.NewService()
		metricsHandler := metrics.NewMetricsHandler()
		proj := projector.New(leagueStore, metricsSvc, calCfg, newRand(watchSeed))
		s := server.NewServer(leagueStore, metricsSvc, metricsHandler, cfg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go proj.Run(ctx, watchInterval)

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: s,
		}

		// Channel to listen for errors coming from the server
		serverErrors := make(chan error, 1)
		go func() {
			log.Info("Server started", "port", cfg.Port, "interval", watchInterval)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt signals
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			log.Info("Shutdown signal received", "signal", sig)
			cancel()

			shutdownCtx, timeout := context.WithTimeout(context.Background(), 30*time.Second)
			defer timeout()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Server shutdown failed", "error", err)
			} else {
				log.Info("Server gracefully stopped")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Minute, "time between projection refreshes")
	watchCmd.Flags().Int64Var(&watchSeed, "seed", 0, "simulation seed (0 seeds from the clock)")
}
