package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/driftlock/loggifly-sink/internal/config"
	"github.com/driftlock/loggifly-sink/internal/format"
	"github.com/driftlock/loggifly-sink/internal/handlers"
	"github.com/driftlock/loggifly-sink/internal/service"
	"github.com/driftlock/loggifly-sink/internal/sink"
)

// newTestRouter wires the real pipeline against a temp dir sink.
func newTestRouter(t *testing.T, mode format.Mode, sinkOpts ...sink.Option) (http.Handler, string) {
	t.Helper()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "notifications.log")
	cfg.Log.File = path
	cfg.Log.Format = string(mode)

	s, err := sink.New(path, sinkOpts...)
	if err != nil {
		t.Fatalf("sink.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	svc := service.NewNotifyService(s, mode)
	return NewRouter(handlers.NewWebhookHandler(svc, cfg)), path
}

func postWebhook(t *testing.T, router http.Handler, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestWebhook_EndToEnd_JSON(t *testing.T) {
	router, path := newTestRouter(t, format.ModeDetailed)

	rr := postWebhook(t, router, "application/json",
		[]byte(`{"container":"nginx","keyword":"error","message":"disk full"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("POST /webhook returned %d, want 200", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response["status"] != "success" {
		t.Errorf("Expected status 'success', got %q", response["status"])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "nginx | error | disk full\n" {
		t.Errorf("Log file = %q, want %q", string(data), "nginx | error | disk full\n")
	}
}

func TestWebhook_EndToEnd_PlainText(t *testing.T) {
	router, path := newTestRouter(t, format.ModeDetailed)

	rr := postWebhook(t, router, "text/plain", []byte("raw text"))

	if rr.Code != http.StatusOK {
		t.Fatalf("POST /webhook returned %d, want 200", rr.Code)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "unknown | unknown | raw text\n" {
		t.Errorf("Log file = %q, want %q", string(data), "unknown | unknown | raw text\n")
	}
}

func TestWebhook_EndToEnd_MalformedJSON(t *testing.T) {
	router, path := newTestRouter(t, format.ModeDetailed)

	rr := postWebhook(t, router, "application/json", []byte(`{not json`))

	// Malformed JSON is treated as an empty object, never an error.
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /webhook returned %d, want 200", rr.Code)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "unknown | unknown | No message\n" {
		t.Errorf("Log file = %q, want %q", string(data), "unknown | unknown | No message\n")
	}
}

func TestStats_EndToEnd(t *testing.T) {
	router, _ := newTestRouter(t, format.ModeDetailed,
		sink.WithMaxSize(60), sink.WithBackupCount(2))

	getStats := func() map[string]interface{} {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("GET /stats returned %d, want 200", rr.Code)
		}
		var response map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode stats: %v", err)
		}
		return response
	}

	// Before any write: size 0, no rotated files.
	stats := getStats()
	if stats["main_log_size"] != float64(0) {
		t.Errorf("main_log_size = %v, want 0", stats["main_log_size"])
	}
	if stats["rotated_files"] != float64(0) {
		t.Errorf("rotated_files = %v, want 0", stats["rotated_files"])
	}

	// Each line is 51 bytes after formatting, so the second write forces
	// exactly one rotation at maxSize 60.
	long := strings.Repeat("x", 30)
	postWebhook(t, router, "text/plain", []byte(long))
	postWebhook(t, router, "text/plain", []byte(long))

	stats = getStats()
	if stats["rotated_files"] != float64(1) {
		t.Errorf("rotated_files = %v, want 1", stats["rotated_files"])
	}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, format.ModeDetailed)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("/health returned %d, want 200", rr.Code)
	}
}

func TestRouter_ConfigEndpoint(t *testing.T) {
	router, path := newTestRouter(t, format.ModeDetailed)

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("/config returned %d, want 200", rr.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode config: %v", err)
	}
	if response["log_file"] != path {
		t.Errorf("log_file = %v, want %q", response["log_file"], path)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, format.ModeDetailed)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("/metrics returned %d, want 200", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Error("/metrics returned empty body")
	}
}

func TestRouter_RequestIDMiddleware(t *testing.T) {
	router, _ := newTestRouter(t, format.ModeDetailed)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set by middleware")
	}
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, format.ModeDetailed)

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("/nonexistent returned %d, want 404", rr.Code)
	}
}
