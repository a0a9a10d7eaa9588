package http

import (
	"net/http"

	"github.com/mhenders/baize/internal/config"
	"github.com/mhenders/baize/internal/metrics"
	"github.com/mhenders/baize/internal/store"
)

func NewServer(leagueStore store.LeagueStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          leagueStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/lineup", Chain(s.LineupHandler(), paramsMiddleware))
	s.Router.Handle("/reports/latest", Chain(s.LatestReportHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
