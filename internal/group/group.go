// Package group merges playlist entries that share a channel identity into
// ordered candidate lists.
package group

import (
	"fmt"

	"github.com/savid/playlist-checker/pkg/m3u"
)

// Candidate is one URL offered for a channel, tagged with its global
// encounter index and originating file.
type Candidate struct {
	URL        string
	Index      int
	SourceFile string
}

// Group collects every candidate URL for one channel identity. Metadata is
// the representative metadata of the first-encountered entry; OrderKey is
// that entry's global index and fixes the group's position in the final
// output regardless of verification completion order.
type Group struct {
	ID         string
	Metadata   []string
	Candidates []Candidate
	OrderKey   int
}

// Build groups entries by channel identity across all source files,
// preserving encounter order both between groups and within each group's
// candidate list. Entries whose identity is absent or empty each get a
// group of their own, keyed by their global index so two id-less entries
// never merge.
func Build(entries []m3u.Entry) []*Group {
	byKey := make(map[string]*Group)
	var groups []*Group

	for _, entry := range entries {
		id, ok := m3u.TVGID(entry.Metadata)
		key := id
		if !ok || id == "" {
			id = ""
			key = fmt.Sprintf("no-id:%d", entry.Index)
		}

		g, exists := byKey[key]
		if !exists {
			g = &Group{
				ID:       id,
				Metadata: entry.Metadata,
				OrderKey: entry.Index,
			}
			byKey[key] = g
			groups = append(groups, g)
		}

		g.Candidates = append(g.Candidates, Candidate{
			URL:        entry.URL,
			Index:      entry.Index,
			SourceFile: entry.SourceFile,
		})
	}

	return groups
}

// Stats summarizes a grouped entry set for progress reporting.
type Stats struct {
	Identified int
	Anonymous  int
	MultiURL   int
	CrossFile  int
}

// Describe counts identified channels, id-less entries, channels with
// backup URLs, and channels whose candidates span multiple source files.
func Describe(groups []*Group) Stats {
	var stats Stats

	for _, g := range groups {
		if g.ID == "" {
			stats.Anonymous++
		} else {
			stats.Identified++
		}

		if len(g.Candidates) > 1 {
			stats.MultiURL++
		}

		sources := make(map[string]struct{}, len(g.Candidates))
		for _, c := range g.Candidates {
			sources[c.SourceFile] = struct{}{}
		}
		if len(sources) > 1 {
			stats.CrossFile++
		}
	}

	return stats
}
