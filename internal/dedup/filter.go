// Package dedup filters playlist entries against channel identities that
// were already published elsewhere.
package dedup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/savid/playlist-checker/pkg/m3u"
)

// CollectIDs scans a directory's playlist files and returns every non-empty
// channel identity found. A missing directory yields an empty set rather
// than an error, matching the optional nature of the reference directory.
func CollectIDs(dir string) (map[string]struct{}, error) {
	ids := make(map[string]struct{})

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ids, nil
		}
		return nil, fmt.Errorf("failed to read reference directory: %w", err)
	}

	for _, de := range dirEntries {
		if de.IsDir() || !m3u.IsPlaylistFile(de.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", de.Name(), err)
		}

		entries, err := m3u.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", de.Name(), err)
		}

		for _, entry := range entries {
			if id, ok := m3u.TVGID(entry.Metadata); ok && id != "" {
				ids[id] = struct{}{}
			}
		}
	}

	return ids, nil
}

// Filter removes entries whose channel identity is present in the reference
// set. Entries without an identity, or with an empty one, always pass
// through. The second return value is the number of entries removed.
func Filter(entries []m3u.Entry, existing map[string]struct{}) ([]m3u.Entry, int) {
	if len(existing) == 0 {
		return entries, 0
	}

	var kept []m3u.Entry
	removed := 0

	for _, entry := range entries {
		if id, ok := m3u.TVGID(entry.Metadata); ok && id != "" {
			if _, dup := existing[id]; dup {
				removed++
				continue
			}
		}
		kept = append(kept, entry)
	}

	return kept, removed
}
