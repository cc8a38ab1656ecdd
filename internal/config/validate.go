package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateBrowser(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Metadata.Separator) == "" {
		return errors.New("metadata.separator must contain a non-space character")
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if err := ensureSetMap(map[string]string{
		"paths.input_dir":     c.Paths.InputDir,
		"paths.output_dir":    c.Paths.OutputDir,
		"paths.converter_dir": c.Paths.ConverterDir,
		"paths.state_dir":     c.Paths.StateDir,
	}); err != nil {
		return err
	}
	output := filepath.Clean(c.Paths.OutputDir)
	if output == string(filepath.Separator) {
		return errors.New("paths.output_dir must not be the filesystem root; it is wiped on every run")
	}
	if within(c.Paths.InputDir, output) {
		return fmt.Errorf("paths.output_dir %q must not contain paths.input_dir %q; it is wiped on every run", output, c.Paths.InputDir)
	}
	for _, kept := range []struct{ key, path string }{
		{"paths.state_dir", c.Paths.StateDir},
		{"paths.log_dir", c.Paths.LogDir},
		{"history.path", c.History.Path},
	} {
		if kept.path != "" && within(kept.path, output) {
			return fmt.Errorf("paths.output_dir %q must not contain %s %q; it is wiped on every run", output, kept.key, kept.path)
		}
	}
	return nil
}

func (c *Config) validateBrowser() error {
	if c.Browser.ConvertTimeout <= 0 {
		return errors.New("browser.convert_timeout must be positive (seconds)")
	}
	if c.Browser.NavigationTimeout <= 0 {
		return errors.New("browser.navigation_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

// within reports whether path equals root or sits beneath it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func ensureSetMap(values map[string]string) error {
	for key, value := range values {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}
