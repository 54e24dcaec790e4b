package m3u

import (
	"regexp"
	"strings"
)

// attrPattern matches one quoted key="value" pair on a directive line.
var attrPattern = regexp.MustCompile(`([0-9A-Za-z-]+)="([^"]*)"`)

// Attribute returns the value of a quoted key="value" attribute on a
// directive line. The boolean reports presence, so an attribute written as
// key="" yields ("", true) while a missing attribute yields ("", false).
func Attribute(line, key string) (string, bool) {
	for _, m := range attrPattern.FindAllStringSubmatch(line, -1) {
		if m[1] == key {
			return m[2], true
		}
	}
	return "", false
}

// SetAttribute returns the line with the given attribute set to value. An
// existing attribute is rewritten in place; a missing one is inserted after
// the last attribute, before the title separator. Everything else on the
// line is preserved byte-for-byte.
func SetAttribute(line, key, value string) string {
	for _, idx := range attrPattern.FindAllStringSubmatchIndex(line, -1) {
		if line[idx[2]:idx[3]] == key {
			return line[:idx[4]] + value + line[idx[5]:]
		}
	}
	return insertAttribute(line, key, value)
}

func insertAttribute(line, key, value string) string {
	attr := key + `="` + value + `"`

	// The title separator is the first comma after the last attribute, or
	// the first comma on the line when there are no attributes.
	searchFrom := 0
	if ms := attrPattern.FindAllStringIndex(line, -1); len(ms) > 0 {
		searchFrom = ms[len(ms)-1][1]
	}
	if i := strings.Index(line[searchFrom:], ","); i >= 0 {
		at := searchFrom + i
		return line[:at] + " " + attr + line[at:]
	}
	return line + " " + attr
}
