// Package handlers provides HTTP handlers for serving finished playlists.
package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// PlaylistServer serves a directory of playlist files with permissive CORS
// headers and the playlist content type, so TVs and players on the local
// network can fetch the consolidated output directly.
type PlaylistServer struct {
	files  http.Handler
	logger *logrus.Logger
}

// NewPlaylistServer creates a handler serving files from dir.
func NewPlaylistServer(dir string, logger *logrus.Logger) *PlaylistServer {
	return &PlaylistServer{
		files:  http.FileServer(http.Dir(dir)),
		logger: logger,
	}
}

func (h *PlaylistServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "*")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.HasSuffix(r.URL.Path, ".m3u") || strings.HasSuffix(r.URL.Path, ".m3u8") {
		w.Header().Set("Content-Type", "application/x-mpegurl")
	}

	h.logger.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"remote": r.RemoteAddr,
	}).Debug("Serving request")

	h.files.ServeHTTP(w, r)
}
