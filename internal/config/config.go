package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directories a conversion run reads from and writes to.
type Paths struct {
	InputDir     string `toml:"input_dir"`
	OutputDir    string `toml:"output_dir"`
	ConverterDir string `toml:"converter_dir"`
	StateDir     string `toml:"state_dir"`
	LogDir       string `toml:"log_dir"`
}

// Browser contains settings for the headless Chrome instance that hosts the
// converter page.
type Browser struct {
	ExecPath          string `toml:"exec_path"`
	Headless          bool   `toml:"headless"`
	NoSandbox         bool   `toml:"no_sandbox"`
	DisableDevShm     bool   `toml:"disable_dev_shm"`
	ConvertTimeout    int    `toml:"convert_timeout"`
	NavigationTimeout int    `toml:"navigation_timeout"`
}

// Metadata contains settings for title/artist derivation.
type Metadata struct {
	// Separator splits a song group name into artist and title. Default: " - "
	Separator string `toml:"separator"`
}

// Run contains batch loop behaviour.
type Run struct {
	// ContinueOnError keeps converting the remaining inputs after one fails
	// and reports failures in the run summary. Default: false (abort batch).
	ContinueOnError bool `toml:"continue_on_error"`
}

// History contains configuration for the conversion ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: <state_dir>/history.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for chartsmith.
//
// Configuration sections by subsystem:
//   - Paths: input tree, output tree, converter application, state and logs
//   - Browser: Chrome launch flags and conversion timeouts
//   - Metadata: artist/title split rule
//   - Run: batch failure policy
//   - History: sqlite conversion ledger
//   - Logging: log format, level, and retention
type Config struct {
	Paths    Paths    `toml:"paths"`
	Browser  Browser  `toml:"browser"`
	Metadata Metadata `toml:"metadata"`
	Run      Run      `toml:"run"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// Overrides carries command-line values. Non-empty fields win over the
// environment and the config file.
type Overrides struct {
	InputDir     string
	OutputDir    string
	ConverterDir string
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/chartsmith/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// ApplyOverrides layers command-line values on top of the loaded config and
// re-validates the result.
func (c *Config) ApplyOverrides(o Overrides) error {
	if v := strings.TrimSpace(o.InputDir); v != "" {
		c.Paths.InputDir = v
	}
	if v := strings.TrimSpace(o.OutputDir); v != "" {
		c.Paths.OutputDir = v
	}
	if v := strings.TrimSpace(o.ConverterDir); v != "" {
		c.Paths.ConverterDir = v
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	return c.Validate()
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("chartsmith.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories. The output root is
// owned by the pipeline, which wipes and recreates it per run.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ConvertTimeout is the deadline for one converter save event.
func (c *Config) ConvertTimeout() time.Duration {
	return time.Duration(c.Browser.ConvertTimeout) * time.Second
}

// NavigationTimeout bounds loading the converter page until the network is idle.
func (c *Config) NavigationTimeout() time.Duration {
	return time.Duration(c.Browser.NavigationTimeout) * time.Second
}

// ConverterEntry returns the converter application's entry document on disk.
func (c *Config) ConverterEntry() string {
	return filepath.Join(c.Paths.ConverterDir, "index.html")
}

// ConverterURL returns the file URL the browser navigates to.
func (c *Config) ConverterURL() string {
	return "file://" + filepath.ToSlash(c.ConverterEntry())
}

// HistoryPath returns the sqlite ledger location.
func (c *Config) HistoryPath() string {
	if strings.TrimSpace(c.History.Path) != "" {
		return c.History.Path
	}
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LockPath returns the lock file guarding the output root during a run.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "run.lock")
}

// LogFilePath returns today's log file, or "" when file logging is disabled.
// One file per day lets retention_days prune whole days.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "chartsmith-"+time.Now().Format("20060102")+".log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
