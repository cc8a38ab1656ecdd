package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TargetName is the input file produced by the upstream stem-merging stage.
const TargetName = "merged.mid"

// Find returns the absolute path of every regular file named TargetName
// (case-insensitive) beneath root, in directory traversal order. A missing
// root yields no inputs rather than an error.
func Find(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve input root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat input root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input root %s is not a directory", absRoot)
	}

	var found []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.EqualFold(d.Name(), TargetName) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input root: %w", err)
	}
	return found, nil
}

// GroupName returns the song group for an input: the first path segment of
// its directory relative to root, or the name of its parent directory when
// the input sits directly in root.
func GroupName(root, input string) string {
	dir := filepath.Dir(input)
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || rel == "" {
		return filepath.Base(dir)
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return first
}
