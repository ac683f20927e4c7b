// Package config loads the imagescore command-line configuration from TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Scan contains folder scan settings.
type Scan struct {
	MinScore       float64 `toml:"min_score"`
	Workers        int     `toml:"workers"` // 0 means one per CPU
	FollowSymlinks bool    `toml:"follow_symlinks"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Output contains configuration for command results.
type Output struct {
	Format string `toml:"format"` // table or json
}

// Config encapsulates all configuration values for imagescore.
type Config struct {
	Scan    Scan    `toml:"scan"`
	Logging Logging `toml:"logging"`
	Output  Output  `toml:"output"`
}

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scan: Scan{
			MinScore: 0.5,
			Workers:  1,
		},
		Logging: Logging{
			Level:  "warn",
			Format: "console",
		},
		Output: Output{
			Format: OutputTable,
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/imagescore/config.toml")
}

// Load parses and validates a configuration file. An empty path means the
// default location. A missing file is not an error: the defaults are
// returned with exists set to false.
func Load(path string) (cfg *Config, resolved string, exists bool, err error) {
	c := Default()

	resolved, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&c); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}
	return &c, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// normalize trims and lower-cases enumerations and resolves worker counts.
func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Output.Format == "" {
		c.Output.Format = OutputTable
	}
	c.Scan.Workers = ResolveWorkers(c.Scan.Workers)
}

// ResolveWorkers applies the worker count convention shared by the config
// file and the command line: 0 means one worker per CPU. Other values are
// returned unchanged.
func ResolveWorkers(n int) int {
	if n == 0 {
		return runtime.NumCPU()
	}
	return n
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if math.IsNaN(c.Scan.MinScore) || math.IsInf(c.Scan.MinScore, 0) {
		return fmt.Errorf("scan.min_score must be finite, got %v", c.Scan.MinScore)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must be >= 0, got %d", c.Scan.Workers)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Output.Format {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("output.format: unsupported value %q", c.Output.Format)
	}
	return nil
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
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules (leading ~, absolute) for
// command arguments.
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
