package deps

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// browserCandidates mirrors the names chromedp probes when no exec path is set.
var browserCandidates = []string{
	"headless_shell",
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"google-chrome-beta",
	"google-chrome-unstable",
	"/usr/bin/google-chrome",
	"/usr/local/bin/chrome",
	"/snap/bin/chromium",
	"chrome",
}

func init() {
	if runtime.GOOS == "darwin" {
		browserCandidates = append([]string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		}, browserCandidates...)
	}
}

// CheckBrowser reports the Chrome binary the conversion session will launch.
// An explicit exec path must exist and be executable; otherwise the usual
// Chrome and Chromium names are resolved from PATH.
func CheckBrowser(execPath string) Status {
	result := Status{Name: "Chrome"}

	if execPath = strings.TrimSpace(execPath); execPath != "" {
		result.Command = execPath
		info, err := os.Stat(execPath)
		switch {
		case err != nil:
			result.Detail = fmt.Sprintf("browser.exec_path %q: %v", execPath, err)
		case !isExecutable(info):
			result.Detail = fmt.Sprintf("browser.exec_path %q is not executable", execPath)
		default:
			result.Available = true
		}
		return result
	}

	return lookupBrowser(result, browserCandidates)
}

func lookupBrowser(result Status, candidates []string) Status {
	for _, name := range candidates {
		if resolved, err := exec.LookPath(name); err == nil {
			result.Command = resolved
			result.Available = true
			return result
		}
	}
	result.Detail = "no chrome or chromium binary found on PATH; set browser.exec_path"
	return result
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
