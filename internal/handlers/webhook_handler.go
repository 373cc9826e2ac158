package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/driftlock/loggifly-sink/internal/config"
	"github.com/driftlock/loggifly-sink/internal/httputil"
	"github.com/driftlock/loggifly-sink/internal/logging"
	"github.com/driftlock/loggifly-sink/internal/models"
	"github.com/driftlock/loggifly-sink/internal/sink"
)

// NotificationService is the part of the service layer the handlers need.
type NotificationService interface {
	Process(ctx context.Context, contentType string, body []byte) (models.Notification, string, error)
	GetStats() models.IngestionStats
	SinkStats() (sink.Stats, error)
	SinkPath() string
	HealthCheck() error
}

// WebhookHandler serves the webhook ingest endpoint and the read-only
// introspection endpoints.
type WebhookHandler struct {
	service NotificationService
	cfg     *config.Config
}

func NewWebhookHandler(service NotificationService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		cfg:     cfg,
	}
}

// Webhook ingests one notification. It is maximally permissive about the
// payload: only transport-level failures (unreadable body, unwritable
// sink) produce an error response, and those never terminate the process.
func (h *WebhookHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to read webhook body", logging.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "error processing webhook: "+err.Error())
		return
	}
	defer r.Body.Close()

	_, _, err = h.service.Process(r.Context(), r.Header.Get("Content-Type"), body)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to log notification", logging.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "error processing webhook: "+err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.WebhookResponse{
		Status:  "success",
		Message: "Notification logged",
	})
}

// Health reports liveness and sink writability.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.HealthCheck(); err != nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"log_file": h.service.SinkPath(),
		"version":  "1.0",
	})
}

// Config dumps the resolved configuration. Nothing in it is secret.
func (h *WebhookHandler) Config(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"host":         h.cfg.Server.Host,
		"port":         h.cfg.Server.Port,
		"log_file":     h.cfg.Log.File,
		"log_format":   h.cfg.Log.Format,
		"log_rotation": h.cfg.Log.Rotation,
		"max_log_size": h.cfg.Log.MaxSize,
		"backup_count": h.cfg.Log.BackupCount,
		"log_level":    h.cfg.Logging.Level,
	})
}

// Stats reports the sink's on-disk state plus in-process counters.
func (h *WebhookHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.SinkStats()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	totalFiles := st.RotatedFiles
	if st.Size > 0 {
		totalFiles++
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"log_file":      h.service.SinkPath(),
		"main_log_size": st.Size,
		"rotated_files": st.RotatedFiles,
		"total_files":   totalFiles,
		"ingestion":     h.service.GetStats(),
	})
}

// Icon serves the container icon used by dashboard integrations.
func (h *WebhookHandler) Icon(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(h.cfg.Icon.Path); err != nil {
		httputil.WriteError(w, http.StatusNotFound, "icon not found")
		return
	}
	http.ServeFile(w, r, h.cfg.Icon.Path)
}
