package metadata

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultSeparator splits "Artist - Title" song group names.
const DefaultSeparator = " - "

// Metadata is the title/artist pair written into a song's descriptor files.
type Metadata struct {
	Artist string
	Title  string
}

// Empty reports whether there is nothing to write.
func (m Metadata) Empty() bool {
	return m.Artist == "" && m.Title == ""
}

// Derive splits a song group name on the first separator. Without a
// separator the whole name is the title. Names are NFC-normalised so
// decomposed directory names (as macOS stores them) write composed text.
func Derive(name, separator string) Metadata {
	sanitized := strings.TrimSpace(norm.NFC.String(name))
	if sanitized == "" {
		return Metadata{}
	}
	if separator == "" {
		separator = DefaultSeparator
	}
	before, after, found := strings.Cut(sanitized, separator)
	if !found {
		return Metadata{Title: sanitized}
	}
	title := strings.TrimSpace(after)
	if title == "" {
		title = sanitized
	}
	return Metadata{Artist: strings.TrimSpace(before), Title: title}
}
