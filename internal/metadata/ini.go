package metadata

import (
	"regexp"
	"strings"
)

// INI keys written into song.ini.
const (
	INIKeyName   = "name"
	INIKeyArtist = "artist"
)

var songHeaderPattern = regexp.MustCompile(`(?mi)^\x{FEFF}?[ \t]*\[song\][^\n]*\n`)

// SetINIValue upserts "key = value" in song.ini content. An existing
// assignment (matched case-insensitively at the start of a line) keeps its
// key spelling and spacing and only has its value replaced. A new assignment
// goes directly under the [song] header, or at the end when there is no
// header. An empty value leaves content untouched.
func SetINIValue(content, key, value string) string {
	return iniField(key).upsert(content, value)
}

func iniField(key string) field {
	assignment := regexp.MustCompile(`(?mi)^\x{FEFF}?[ \t]*` + regexp.QuoteMeta(key) + `[ \t]*=`)
	return field{
		locate: func(content string) (int, int, bool) {
			loc := assignment.FindStringIndex(content)
			if loc == nil {
				return 0, 0, false
			}
			return loc[1], lineEnd(content, loc[1]), true
		},
		render: func(value string) string {
			return " " + value
		},
		insert: func(content, value string) (int, string, bool) {
			le := lineEnding(content)
			line := key + " = " + value + le
			if loc := songHeaderPattern.FindStringIndex(content); loc != nil {
				return loc[1], line, true
			}
			if content == "" || strings.HasSuffix(content, "\n") {
				return len(content), line, true
			}
			return len(content), le + line, true
		},
	}
}

// lineEnding returns the file's dominant line terminator.
func lineEnding(content string) string {
	if strings.Contains(content, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// lineEnd returns the index of the line terminator at or after from, so a
// trailing "\r" stays in place.
func lineEnd(content string, from int) int {
	end := strings.IndexByte(content[from:], '\n')
	if end < 0 {
		return len(content)
	}
	end += from
	if end > from && content[end-1] == '\r' {
		end--
	}
	return end
}
