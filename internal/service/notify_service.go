package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/driftlock/loggifly-sink/internal/format"
	"github.com/driftlock/loggifly-sink/internal/logging"
	"github.com/driftlock/loggifly-sink/internal/metrics"
	"github.com/driftlock/loggifly-sink/internal/models"
	"github.com/driftlock/loggifly-sink/internal/normalizer"
	"github.com/driftlock/loggifly-sink/internal/sink"
)

// NotifyService owns the normalize-format-append pipeline. It is the only
// writer to the sink and keeps in-process ingestion counters.
type NotifyService struct {
	sink       *sink.Sink
	mode       format.Mode
	stats      models.IngestionStats
	statsMutex sync.RWMutex
}

// NewNotifyService creates a service appending notifications to s in the
// given format mode.
func NewNotifyService(s *sink.Sink, mode format.Mode) *NotifyService {
	return &NotifyService{
		sink: s,
		mode: mode,
	}
}

// Process normalizes one inbound webhook body, formats it and appends the
// line to the sink. The returned line is what was logged. Normalization is
// total; the only failure mode is a sink write error.
func (s *NotifyService) Process(ctx context.Context, contentType string, body []byte) (models.Notification, string, error) {
	rec := normalizer.Normalize(contentType, body, time.Now())
	line := format.Format(rec, s.mode)

	if err := s.sink.Append(line); err != nil {
		s.updateStats(0, false)
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return rec, "", err
	}

	s.updateStats(len(body), true)
	metrics.NotificationsTotal.WithLabelValues("success").Inc()
	metrics.NotificationBytesTotal.Add(float64(len(body)))

	// Mirror every notification to the process log, like the console
	// handler in classic deployments.
	slog.InfoContext(ctx, "notification logged",
		logging.Container(rec.Container),
		logging.Keyword(rec.Keyword),
	)

	return rec, line, nil
}

// GetStats returns a snapshot of the in-process ingestion counters.
func (s *NotifyService) GetStats() models.IngestionStats {
	s.statsMutex.RLock()
	defer s.statsMutex.RUnlock()
	return s.stats
}

// SinkStats reports the on-disk state of the sink.
func (s *NotifyService) SinkStats() (sink.Stats, error) {
	return s.sink.Stats()
}

// SinkPath returns the active log file path.
func (s *NotifyService) SinkPath() string {
	return s.sink.Path()
}

// HealthCheck reports whether the sink is writable.
func (s *NotifyService) HealthCheck() error {
	return s.sink.HealthCheck()
}

func (s *NotifyService) updateStats(bytes int, success bool) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TotalNotifications++
	if success {
		s.stats.TotalBytes += int64(bytes)
		s.stats.LastNotification = time.Now()
	} else {
		s.stats.FailedNotifications++
	}
}
