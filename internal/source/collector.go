// Package source resolves input paths into an ordered set of playlist
// files and loads their entries with global indexing.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/savid/playlist-checker/internal/dedup"
	"github.com/savid/playlist-checker/pkg/m3u"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("input path not found")
	// ErrNoPlaylistFiles is returned when a directory input contains no playlist files.
	ErrNoPlaylistFiles = errors.New("no playlist files found")
)

// Resolve expands an input path into the list of playlist files to process.
// A single file is returned as-is; a directory yields its playlist files in
// lexicographic order so the global entry numbering is deterministic.
func Resolve(inputPath string) (files []string, isDir bool, err error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
		}
		return nil, false, fmt.Errorf("failed to stat input path: %w", err)
	}

	if !info.IsDir() {
		return []string{inputPath}, false, nil
	}

	dirEntries, err := os.ReadDir(inputPath)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read input directory: %w", err)
	}

	for _, de := range dirEntries {
		if de.IsDir() || !m3u.IsPlaylistFile(de.Name()) {
			continue
		}
		files = append(files, filepath.Join(inputPath, de.Name()))
	}

	if len(files) == 0 {
		return nil, true, fmt.Errorf("%w: %s", ErrNoPlaylistFiles, inputPath)
	}

	sort.Strings(files)
	return files, true, nil
}

// DefaultOutput derives the output filename for an input path: the input
// stem plus "_working.m3u" for a file, or the directory name plus
// "_working.m3u" for a directory.
func DefaultOutput(inputPath string, isDir bool) string {
	if isDir {
		return filepath.Base(filepath.Clean(inputPath)) + "_working.m3u"
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_working.m3u"
}

// Load reads and parses each file in order, drops entries whose channel id
// appears in the reference set, and assigns global indexes in encounter
// order over the surviving entries. The second return value is the number
// of entries removed as duplicates.
func Load(files []string, existing map[string]struct{}, logger *logrus.Logger) ([]m3u.Entry, int, error) {
	var all []m3u.Entry
	removed := 0
	index := 0

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
		}

		entries, err := m3u.Parse(data)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		kept, dropped := dedup.Filter(entries, existing)
		removed += dropped
		if dropped > 0 {
			logger.WithFields(logrus.Fields{
				"file":    filepath.Base(path),
				"removed": dropped,
			}).Info("Filtered duplicate entries")
		}

		for _, entry := range kept {
			entry.Index = index
			entry.SourceFile = filepath.Base(path)
			all = append(all, entry)
			index++
		}

		logger.WithFields(logrus.Fields{
			"file":    filepath.Base(path),
			"entries": len(kept),
		}).Debug("Loaded playlist entries")
	}

	return all, removed, nil
}
