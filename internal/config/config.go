// Package config loads docview's settings. Sources apply in order, each overriding the last: built-in defaults, the user file
// (<UserConfigDir>/docview/config.toml), the nearest .docview.toml at or above the working directory, then DOCVIEW_* environment variables. Command-line flags
// are applied by the caller on top of the result.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ProjectFileName is the per-project config file searched for upward from the working directory.
const ProjectFileName = ".docview.toml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Theme holds lipgloss color strings (ANSI numbers like "196" or hex like "#ff0000").
type Theme struct {
	Search  string `toml:"search"`
	Error   string `toml:"error"`
	Added   string `toml:"added"`
	Removed string `toml:"removed"`
	Key     string `toml:"key"`
	String  string `toml:"string"`
	Number  string `toml:"number"`
	Literal string `toml:"literal"` // true, false, null
}

type Config struct {
	CollapseDepth     int    `toml:"collapse_depth"`      // Containers at a depth below this start expanded.
	Indent            int    `toml:"indent"`              // Spaces per level in formatted output and diffs.
	Color             string `toml:"color"`               // auto, always, or never.
	ExpandJSONStrings bool   `toml:"expand_json_strings"` // Parse strings that hold JSON objects or arrays.
	KeepLastGood      bool   `toml:"keep_last_good"`      // Keep showing the last valid document while the source has errors.
	Lenient           bool   `toml:"lenient"`             // Accept comments, trailing commas, and True/False/None in JSON.
	Theme             Theme  `toml:"theme"`

	Files []string `toml:"-"` // Config files that were applied, lowest priority first.
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CollapseDepth: 2,
		Indent:        2,
		Color:         ColorAuto,
		Lenient:       true,
		Theme: Theme{
			Search:  "220",
			Error:   "196",
			Added:   "34",
			Removed: "160",
			Key:     "33",
			String:  "70",
			Number:  "172",
			Literal: "135",
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.CollapseDepth < 0 {
		return fmt.Errorf("collapse_depth must be >= 0, got %d", c.CollapseDepth)
	}
	if c.Indent < 0 || c.Indent > 10 {
		return fmt.Errorf("indent must be between 0 and 10, got %d", c.Indent)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be auto, always, or never, got %q", c.Color)
	}
	return nil
}

// TOML returns c encoded as a config file.
func (c Config) TOML() (string, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Loader describes where configuration comes from. Empty fields skip that source.
type Loader struct {
	UserFile   string                  // Path of the user config file.
	ProjectDir string                  // Directory to start the upward search for ProjectFileName.
	Getenv     func(key string) string // Environment lookup.
}

// DefaultLoader returns a Loader for the current user, working directory, and environment.
func DefaultLoader() Loader {
	l := Loader{Getenv: os.Getenv}
	if dir, err := os.UserConfigDir(); err == nil {
		l.UserFile = filepath.Join(dir, "docview", "config.toml")
	}
	if wd, err := os.Getwd(); err == nil {
		l.ProjectDir = wd
	}
	return l
}

// Load returns the configuration from all of l's sources. Missing files are skipped. Malformed files, unknown keys, bad environment values, and invalid results are
// errors.
func (l Loader) Load() (Config, error) {
	cfg := Default()

	if l.UserFile != "" {
		if err := applyFile(&cfg, l.UserFile); err != nil {
			return Config{}, err
		}
	}
	if l.ProjectDir != "" {
		if path, ok := FindProjectFile(l.ProjectDir); ok && path != l.UserFile {
			if err := applyFile(&cfg, path); err != nil {
				return Config{}, err
			}
		}
	}
	if l.Getenv != nil {
		if err := applyEnv(&cfg, l.Getenv); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FindProjectFile returns the nearest ProjectFileName in dir or its ancestors.
func FindProjectFile(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		path := filepath.Join(dir, ProjectFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// applyFile decodes the TOML file at path over cfg. Keys absent from the file keep their current values.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("config file %s: %s", path, strings.TrimSpace(sme.String()))
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

// Environment variables read by Load.
const (
	EnvCollapseDepth = "DOCVIEW_COLLAPSE_DEPTH"
	EnvIndent        = "DOCVIEW_INDENT"
	EnvColor         = "DOCVIEW_COLOR"
	EnvExpandStrings = "DOCVIEW_EXPAND_STRINGS"
	EnvKeepLastGood  = "DOCVIEW_KEEP_LAST_GOOD"
	EnvLenient       = "DOCVIEW_LENIENT"
)

func applyEnv(cfg *Config, getenv func(string) string) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvCollapseDepth, &cfg.CollapseDepth},
		{EnvIndent, &cfg.Indent},
	}
	for _, e := range ints {
		s := strings.TrimSpace(getenv(e.key))
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", e.key, s)
		}
		*e.dst = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvExpandStrings, &cfg.ExpandJSONStrings},
		{EnvKeepLastGood, &cfg.KeepLastGood},
		{EnvLenient, &cfg.Lenient},
	}
	for _, e := range bools {
		s := strings.TrimSpace(getenv(e.key))
		if s == "" {
			continue
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", e.key, s)
		}
		*e.dst = b
	}

	if s := strings.TrimSpace(getenv(EnvColor)); s != "" {
		cfg.Color = strings.ToLower(s)
	}
	return nil
}
