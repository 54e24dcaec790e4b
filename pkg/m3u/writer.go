package m3u

import "bytes"

// Write serializes entries back to playlist text: the #EXTM3U header
// exactly once, then each entry's metadata lines followed by its URL.
func Write(entries []Entry) []byte {
	var buf bytes.Buffer

	buf.WriteString(Header)
	buf.WriteString("\n")

	for _, entry := range entries {
		for _, line := range entry.Metadata {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
		buf.WriteString(entry.URL)
		buf.WriteString("\n")
	}

	return buf.Bytes()
}
