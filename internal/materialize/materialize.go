package materialize

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// FallbackExtension is appended to the fallback base name when the converter
// saves a payload without a filename.
const FallbackExtension = ".chart"

// ErrUnsafeEntry reports an output path that would land outside the
// destination directory.
var ErrUnsafeEntry = errors.New("entry escapes destination directory")

// IsArchive reports whether a suggested filename denotes a multi-file bundle.
func IsArchive(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".zip")
}

// Materialize writes a captured converter payload into destDir. Zip payloads
// are expanded entry by entry; anything else becomes a single file named
// filename, or fallbackBase+FallbackExtension when filename is empty. It
// returns the files written.
func Materialize(filename string, data []byte, destDir, fallbackBase string) ([]string, error) {
	if IsArchive(filename) {
		return extractZip(data, destDir)
	}

	name := filename
	if strings.TrimSpace(name) == "" {
		name = fallbackBase + FallbackExtension
	}
	target, err := resolveTarget(destDir, name)
	if err != nil {
		return nil, err
	}
	if err := writeFile(target, bytes.NewReader(data), 0o644); err != nil {
		return nil, err
	}
	return []string{target}, nil
}

func extractZip(data []byte, destDir string) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	var written []string
	for _, file := range zr.File {
		target, err := resolveTarget(destDir, file.Name)
		if err != nil {
			return written, err
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return written, fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}
		if err := extractEntry(file, target); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}

func extractEntry(file *zip.File, target string) error {
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", file.Name, err)
	}
	defer rc.Close()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	return writeFile(target, rc, mode)
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	return nil
}

// resolveTarget joins an archive-style relative name onto destDir and rejects
// names that climb out of it.
func resolveTarget(destDir, name string) (string, error) {
	cleanName := strings.ReplaceAll(name, `\`, "/")
	target := filepath.Join(destDir, filepath.FromSlash(cleanName))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}
	return target, nil
}
