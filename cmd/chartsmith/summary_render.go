package main

import (
	"fmt"
	"strings"
	"time"

	"chartsmith/internal/pipeline"
)

func renderSummary(summary pipeline.Summary) string {
	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		status := "converted"
		detail := fmt.Sprintf("%d files", len(r.Files))
		if r.Err != nil {
			status = string(r.Category())
			detail = r.Err.Error()
		} else if r.Report.Failed() {
			status = "converted (metadata warning)"
		}
		rows = append(rows, []string{r.SongGroup, status, formatDuration(r.Duration()), detail})
	}
	table := renderTable([]tableColumn{
		{title: "Song group"},
		{title: "Status"},
		{title: "Time", numeric: true},
		{title: "Detail"},
	}, rows)

	parts := []string{fmt.Sprintf("%d converted", summary.Converted())}
	if n := summary.Failed(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	if n := summary.Skipped(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d not attempted", n))
	}
	switch n := summary.MetadataWarnings(); {
	case n == 1:
		parts = append(parts, "1 metadata warning")
	case n > 1:
		parts = append(parts, fmt.Sprintf("%d metadata warnings", n))
	}
	return table + "\n" + fmt.Sprintf("Run %s: %s", summary.RunID, strings.Join(parts, ", "))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(100 * time.Millisecond).String()
}
