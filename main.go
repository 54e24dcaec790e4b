// Command playlist-checker verifies the URLs in M3U playlists, consolidates
// multiple sources into one playlist of working channels, and optionally
// serves the result over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/savid/playlist-checker/config"
	"github.com/savid/playlist-checker/handlers"
	"github.com/savid/playlist-checker/internal/runner"
	"github.com/savid/playlist-checker/internal/source"
	"github.com/sirupsen/logrus"
)

func main() {
	// Configure logrus
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	cfg, err := config.New()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse log level")
	}
	logrus.SetLevel(level)
	if cfg.Quiet {
		logrus.SetLevel(logrus.ErrorLevel)
	}

	logger := logrus.StandardLogger()

	if cfg.Serve {
		serve(cfg, logger)
		return
	}

	summary, err := runner.New(cfg, logger).Run()
	if err != nil {
		logger.WithError(err).Fatal("Playlist check failed")
	}

	printSummary(summary)
}

func printSummary(s *runner.Summary) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Printf("%s Working channels: %d\n", green("✓"), s.Working)
	fmt.Printf("%s Failed channels: %d\n", red("✗"), s.Failed)
	fmt.Printf("Total entries: %d\n", s.Entries)
	if s.Duplicates > 0 {
		fmt.Printf("Filtered duplicates: %d\n", s.Duplicates)
	}
	if s.Groups > 0 {
		fmt.Printf("Success rate: %.1f%%\n", float64(s.Working)/float64(s.Groups)*100)
	}
	fmt.Printf("Consolidated playlist written to: %s\n", s.OutputPath)
}

// serve republishes the finished output playlist over HTTP. It refuses to
// start when the expected playlist file is absent.
func serve(cfg *config.Config, logger *logrus.Logger) {
	playlist := cfg.OutputPath
	if playlist == "" {
		info, err := os.Stat(cfg.InputPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to stat input path")
		}
		playlist = source.DefaultOutput(cfg.InputPath, info.IsDir())
	}

	if _, err := os.Stat(playlist); err != nil {
		logger.WithField("playlist", playlist).Fatal("Output playlist not found, run a check first")
	}

	mux := http.NewServeMux()
	mux.Handle("/", handlers.NewPlaylistServer(filepath.Dir(playlist), logger))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Failed to gracefully shutdown")
		}
	}()

	logger.WithField("port", cfg.Port).Info("Starting playlist server")
	logger.WithField("endpoint", fmt.Sprintf("http://localhost:%d/%s", cfg.Port, filepath.Base(playlist))).Info("Playlist endpoint")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Failed to start server")
	}

	logger.Info("Server stopped")
}
