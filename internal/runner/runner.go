// Package runner wires the playlist pipeline together: collect, filter,
// group, verify, annotate, write.
package runner

import (
	"fmt"
	"os"

	"github.com/savid/playlist-checker/config"
	"github.com/savid/playlist-checker/internal/annotate"
	"github.com/savid/playlist-checker/internal/check"
	"github.com/savid/playlist-checker/internal/dedup"
	"github.com/savid/playlist-checker/internal/group"
	"github.com/savid/playlist-checker/internal/source"
	"github.com/savid/playlist-checker/pkg/m3u"
	"github.com/sirupsen/logrus"
)

// Summary reports the outcome of a check run.
type Summary struct {
	Files      int
	Entries    int
	Groups     int
	Working    int
	Failed     int
	Duplicates int
	OutputPath string
}

// Runner executes the full check pipeline for one configuration.
type Runner struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// New creates a runner for the given configuration.
func New(cfg *config.Config, logger *logrus.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logger,
	}
}

// Run executes the pipeline and writes the consolidated playlist. The
// output file is written exactly once, after all verification completes;
// fatal errors before that point leave no partial file behind.
func (r *Runner) Run() (*Summary, error) {
	files, isDir, err := source.Resolve(r.cfg.InputPath)
	if err != nil {
		return nil, err
	}

	outputPath := r.cfg.OutputPath
	if outputPath == "" {
		outputPath = source.DefaultOutput(r.cfg.InputPath, isDir)
	}

	r.logger.WithFields(logrus.Fields{
		"files":  len(files),
		"input":  r.cfg.InputPath,
		"output": outputPath,
	}).Info("Checking playlist URLs")

	existing := map[string]struct{}{}
	if r.cfg.FilterDupDir != "" {
		existing, err = dedup.CollectIDs(r.cfg.FilterDupDir)
		if err != nil {
			return nil, err
		}
		r.logger.WithField("ids", len(existing)).Info("Loaded existing channel ids for duplicate filtering")
	}

	entries, duplicates, err := source.Load(files, existing, r.logger)
	if err != nil {
		return nil, err
	}

	groups := group.Build(entries)

	if !r.cfg.Quiet {
		stats := group.Describe(groups)
		r.logger.WithFields(logrus.Fields{
			"channels":   stats.Identified,
			"anonymous":  stats.Anonymous,
			"multi_url":  stats.MultiURL,
			"cross_file": stats.CrossFile,
		}).Info("Grouped entries by channel id")
		r.logger.WithFields(logrus.Fields{
			"groups":  len(groups),
			"urls":    len(entries),
			"workers": r.cfg.Workers,
		}).Info("Testing channel groups")
	}

	labeler := annotate.NewLabeler()
	if r.cfg.LabelFile != "" {
		labeler, err = annotate.LoadLabeler(r.cfg.LabelFile)
		if err != nil {
			return nil, err
		}
	}

	verifier := check.NewVerifier(r.cfg.Timeout, r.cfg.Retries, r.logger)
	resolver := check.NewResolver(verifier, r.logger)
	scheduler := check.NewScheduler(resolver, r.cfg.Workers, r.cfg.Quiet, r.logger)

	results, stats, err := scheduler.Run(groups)
	if err != nil {
		return nil, err
	}

	output := make([]m3u.Entry, 0, len(results))
	for _, result := range results {
		label := labeler.Label(result.SourceFile)
		output = append(output, m3u.Entry{
			Metadata: annotate.Apply(result.Metadata, label),
			URL:      result.URL,
		})
	}

	if err := os.WriteFile(outputPath, m3u.Write(output), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output playlist: %w", err)
	}

	return &Summary{
		Files:      len(files),
		Entries:    len(entries),
		Groups:     stats.Groups,
		Working:    stats.Working,
		Failed:     stats.Failed,
		Duplicates: duplicates,
		OutputPath: outputPath,
	}, nil
}
