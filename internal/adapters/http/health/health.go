// Package health serves liveness and Prometheus metrics endpoints.
package health

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/suwen/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler handles health check and metrics requests.
type Handler struct {
	metrics http.Handler
}

// NewHandler creates a new health handler backed by the service registry.
func NewHandler() *Handler {
	return &Handler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// Register attaches /healthz and /metrics to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.Handle("GET /metrics", h.metrics)
}

// HandleHealth handles GET /healthz requests.
// Scrapers asking for text/plain or OpenMetrics get the metrics exposition;
// everyone else gets a JSON status.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/openmetrics-text") || strings.Contains(accept, "text/plain") {
		h.metrics.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
