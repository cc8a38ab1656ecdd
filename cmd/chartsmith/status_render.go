package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
)

// checkLabelWidth fits the longest preflight check name.
const checkLabelWidth = 18

// renderCheckLine formats one doctor check as "  Name:  PASS detail".
func renderCheckLine(name string, passed bool, detail string, colorize bool) string {
	verdict, color := "PASS", ansiGreen
	if !passed {
		verdict, color = "FAIL", ansiRed
	}
	if colorize {
		verdict = color + verdict + ansiReset
	}
	line := fmt.Sprintf("  %-*s %s", checkLabelWidth, name+":", verdict)
	if detail != "" {
		line += " " + detail
	}
	return line
}

func renderHeading(title string, colorize bool) string {
	if colorize {
		return ansiBold + title + ansiReset
	}
	return title
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
