package http

import (
	"net/http"

	"github.com/mhenders/baize/internal/config"
	"github.com/mhenders/baize/internal/metrics"
	"github.com/mhenders/baize/internal/store"
)

type Server struct {
	Store          store.LeagueStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
