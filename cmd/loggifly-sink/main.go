package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/driftlock/loggifly-sink/internal/config"
	"github.com/driftlock/loggifly-sink/internal/format"
	"github.com/driftlock/loggifly-sink/internal/handlers"
	"github.com/driftlock/loggifly-sink/internal/logging"
	"github.com/driftlock/loggifly-sink/internal/server"
	"github.com/driftlock/loggifly-sink/internal/service"
	"github.com/driftlock/loggifly-sink/internal/sink"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration; a bad MAX_LOG_SIZE refuses to start.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("loggifly-sink"))
	logging.SetDefault(logger)

	slog.Info("Starting LoggiFly sink",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
	)
	slog.Info("Notification log configured",
		slog.String("file", cfg.Log.File),
		slog.String("format", cfg.Log.Format),
		slog.Bool("rotation", cfg.Log.Rotation),
		slog.String("max_size", cfg.Log.MaxSize),
		slog.Int("backup_count", cfg.Log.BackupCount),
	)

	// Open the notification sink. Rotation disabled means no size bound.
	sinkOpts := []sink.Option{sink.WithBackupCount(cfg.Log.BackupCount)}
	if cfg.Log.Rotation {
		sinkOpts = append(sinkOpts, sink.WithMaxSize(cfg.Log.MaxSizeBytes))
	}
	logSink, err := sink.New(cfg.Log.File, sinkOpts...)
	if err != nil {
		log.Fatalf("Failed to open notification log: %v", err)
	}
	defer logSink.Close()

	// Wire the pipeline
	notifyService := service.NewNotifyService(logSink, format.ParseMode(cfg.Log.Format))
	handler := handlers.NewWebhookHandler(notifyService, cfg)
	router := server.NewRouter(handler)

	// Create server with config values
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		slog.Info("Ready to log notifications", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("Server stopped")
}
