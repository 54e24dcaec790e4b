// Package m3u provides parsing and serialization for M3U playlist files.
package m3u

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// Header is the playlist file marker emitted once at the top of output.
	Header = "#EXTM3U"

	// ExtInfPrefix marks the extended-info directive carrying channel metadata.
	ExtInfPrefix = "#EXTINF"

	vlcOptPrefix = "#EXTVLCOPT"

	// TVGIDAttr is the channel identity attribute on #EXTINF lines.
	TVGIDAttr = "tvg-id"
	// GroupTitleAttr is the display-grouping attribute on #EXTINF lines.
	GroupTitleAttr = "group-title"
)

// Entry represents a single playlist entry: the directive lines preceding a
// stream URL, and the URL itself. Index and SourceFile are assigned by the
// caller when entries from multiple files are collected.
type Entry struct {
	Metadata   []string
	URL        string
	Index      int
	SourceFile string
}

// Parse extracts entries from M3U playlist data. Metadata for an entry is
// whatever accumulated since the previous URL line: an #EXTINF directive
// starts a fresh buffer, #EXTVLCOPT directives append to it, and any other
// comment or blank line is dropped without touching the buffer.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	var metadata []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, ExtInfPrefix):
			metadata = []string{line}
		case strings.HasPrefix(line, vlcOptPrefix):
			metadata = append(metadata, line)
		case line != "" && !strings.HasPrefix(line, "#"):
			entries = append(entries, Entry{Metadata: metadata, URL: line})
			metadata = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning M3U data: %w", err)
	}

	return entries, nil
}

// TVGID extracts the channel identity from an entry's metadata. The second
// return value reports whether the attribute was present at all; a present
// but empty tvg-id yields ("", true).
func TVGID(metadata []string) (string, bool) {
	for _, line := range metadata {
		if !strings.HasPrefix(line, ExtInfPrefix) {
			continue
		}
		if id, ok := Attribute(line, TVGIDAttr); ok {
			return id, true
		}
	}
	return "", false
}

// IsPlaylistFile reports whether the filename carries a playlist extension.
func IsPlaylistFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".m3u" || ext == ".m3u8"
}
