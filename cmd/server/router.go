package main

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vixducis/pour-decisions/internal/config"
	"github.com/vixducis/pour-decisions/internal/metrics"
	"github.com/vixducis/pour-decisions/internal/middleware"
	"github.com/vixducis/pour-decisions/internal/service"
	"github.com/vixducis/pour-decisions/internal/storage"
)

// newRouter wires the Connect services, health check and metrics endpoint.
// Collectors are registered on reg and served from gatherer.
func newRouter(cfg *config.Config, store storage.Store, reg prometheus.Registerer, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(slog.Default()))

	groupPath, groupHandler := service.NewGroupServiceHandler(service.NewGroupService(store), interceptors)
	r.Handle(groupPath+"*", groupHandler)

	settlementSvc := service.NewSettlementService(
		store,
		metrics.NewSettlement(cfg.MetricsNamespace, reg),
		cfg.SettleConcurrency,
	)
	settlementPath, settlementHandler := service.NewSettlementServiceHandler(settlementSvc, interceptors)
	r.Handle(settlementPath+"*", settlementHandler)

	return r
}
