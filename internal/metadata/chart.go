package metadata

import (
	"regexp"
	"strings"
)

var (
	// quoted values may contain \" and \\ escapes written by escapeChartValue.
	chartNamePattern   = regexp.MustCompile(`(?m)^([ \t]*)Name[ \t]*=[ \t]*"((?:[^"\\\r\n]|\\.)*)"[ \t]*(\r?\n)?`)
	chartArtistPattern = regexp.MustCompile(`(?m)^[ \t]*Artist[ \t]*=[ \t]*"((?:[^"\\\r\n]|\\.)*)"`)

	chartName = field{
		locate: submatchSpan(chartNamePattern, 2),
		render: escapeChartValue,
	}
	chartArtist = field{
		locate: submatchSpan(chartArtistPattern, 1),
		render: escapeChartValue,
		insert: afterNameLine,
	}
)

// UpdateChartMetadata rewrites the quoted Name and Artist fields of a
// notes.chart [Song] block. Name is only replaced, never inserted. A missing
// Artist field is inserted on the line after Name with the same indentation.
func UpdateChartMetadata(content, artist, title string) string {
	content = chartName.upsert(content, title)
	return chartArtist.upsert(content, artist)
}

func submatchSpan(pattern *regexp.Regexp, group int) func(string) (int, int, bool) {
	return func(content string) (int, int, bool) {
		loc := pattern.FindStringSubmatchIndex(content)
		if loc == nil {
			return 0, 0, false
		}
		return loc[2*group], loc[2*group+1], true
	}
}

// afterNameLine places Artist below a terminated Name line, copying its
// indentation and line ending.
func afterNameLine(content, value string) (int, string, bool) {
	loc := chartNamePattern.FindStringSubmatchIndex(content)
	if loc == nil || loc[6] < 0 {
		return 0, "", false
	}
	indent := content[loc[2]:loc[3]]
	le := content[loc[6]:loc[7]]
	return loc[1], indent + `Artist = "` + escapeChartValue(value) + `"` + le, true
}

var chartEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeChartValue(value string) string {
	return chartEscaper.Replace(value)
}
