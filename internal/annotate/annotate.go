// Package annotate rewrites the display group of winning entries to carry
// a label derived from their source file.
package annotate

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/savid/playlist-checker/pkg/m3u"
	"gopkg.in/yaml.v2"
)

// defaultLabels maps known source filenames to their display labels.
var defaultLabels = map[string]string{
	"pk.m3u":     "Pakistani",
	"in.m3u":     "Indian",
	"global.m3u": "Global",
}

// Labeler resolves source filenames to human-readable labels.
type Labeler struct {
	table map[string]string
}

// NewLabeler returns a labeler using the built-in filename table.
func NewLabeler() *Labeler {
	table := make(map[string]string, len(defaultLabels))
	for name, label := range defaultLabels {
		table[name] = label
	}
	return &Labeler{table: table}
}

// LoadLabeler reads a YAML filename-to-label mapping and overlays it on
// the built-in table.
func LoadLabeler(path string) (*Labeler, error) {
	l := NewLabeler()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label file: %w", err)
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse label file: %w", err)
	}

	for name, label := range overrides {
		l.table[name] = label
	}

	return l, nil
}

// Label determines the display label for a source filename: an exact table
// match, then a substring match against table keys, then the capitalized
// stem of the filename. Keys are tried in sorted order so the result is
// stable when several keys match.
func (l *Labeler) Label(filename string) string {
	if label, ok := l.table[filename]; ok {
		return label
	}

	keys := make([]string, 0, len(l.table))
	for key := range l.table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lower := strings.ToLower(filename)
	for _, key := range keys {
		if strings.Contains(lower, key) {
			return l.table[key]
		}
	}

	stem := strings.SplitN(filename, ".", 2)[0]
	return capitalize(stem)
}

// Apply rewrites the group-title attribute on the extended-info metadata
// lines: an absent or empty attribute becomes the label, a value lacking
// the label prefix gets it prepended, and an already-prefixed value is
// left alone. All other metadata is preserved byte-for-byte.
func Apply(metadata []string, label string) []string {
	out := make([]string, len(metadata))

	for i, line := range metadata {
		out[i] = line
		if !strings.HasPrefix(line, m3u.ExtInfPrefix) {
			continue
		}

		current, _ := m3u.Attribute(line, m3u.GroupTitleAttr)
		switch {
		case current == "":
			out[i] = m3u.SetAttribute(line, m3u.GroupTitleAttr, label)
		case strings.HasPrefix(current, label):
			// already carries the label
		default:
			out[i] = m3u.SetAttribute(line, m3u.GroupTitleAttr, label+" "+current)
		}
	}

	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
