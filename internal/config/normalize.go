package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnvironment()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBrowser()
	c.normalizeMetadata()
	c.normalizeLogging()
	return nil
}

// applyEnvironment lets the container-style variables win over file values.
func (c *Config) applyEnvironment() {
	if value, ok := os.LookupEnv(envInputDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.InputDir = value
	}
	if value, ok := os.LookupEnv(envOutputDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = value
	}
	if value, ok := os.LookupEnv(envConverterDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.ConverterDir = value
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.ConverterDir, err = expandPath(strings.TrimSpace(c.Paths.ConverterDir)); err != nil {
		return fmt.Errorf("paths.converter_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	if c.Browser.ExecPath = strings.TrimSpace(c.Browser.ExecPath); c.Browser.ExecPath != "" && strings.ContainsRune(c.Browser.ExecPath, '/') {
		if c.Browser.ExecPath, err = expandPath(c.Browser.ExecPath); err != nil {
			return fmt.Errorf("browser.exec_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeBrowser() {
	if c.Browser.ConvertTimeout == 0 {
		c.Browser.ConvertTimeout = defaultConvertTimeout
	}
	if c.Browser.NavigationTimeout == 0 {
		c.Browser.NavigationTimeout = defaultNavigationTimeout
	}
}

func (c *Config) normalizeMetadata() {
	// Whitespace is significant in the separator, so only an unset value is defaulted.
	if c.Metadata.Separator == "" {
		c.Metadata.Separator = defaultSeparator
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
