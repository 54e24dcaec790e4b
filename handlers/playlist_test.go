package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestServer(t *testing.T) *PlaylistServer {
	t.Helper()

	dir := t.TempDir()
	playlist := "#EXTM3U\n#EXTINF:-1 tvg-id=\"c1\",Channel\nhttp://example.com/c1\n"
	if err := os.WriteFile(filepath.Join(dir, "pk_working.m3u"), []byte(playlist), 0o644); err != nil {
		t.Fatalf("Failed to write playlist: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewPlaylistServer(dir, logger)
}

func TestServePlaylist(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/pk_working.m3u", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/x-mpegurl" {
		t.Errorf("Expected playlist content type, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected CORS header, got %q", got)
	}
}

func TestServeOptions(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/pk_working.m3u", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for OPTIONS, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Expected CORS methods header on OPTIONS response")
	}
}

func TestServeMissingFile(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/missing.m3u", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
