package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/driftlock/loggifly-sink/internal/handlers"
	"github.com/driftlock/loggifly-sink/internal/middleware"
)

// NewRouter constructs a ServeMux with the webhook API routes registered.
func NewRouter(h *handlers.WebhookHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/webhook", h.Webhook)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/config", h.Config)
	mux.HandleFunc("/stats", h.Stats)
	mux.HandleFunc("/icon.png", h.Icon)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
