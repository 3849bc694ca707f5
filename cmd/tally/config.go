package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"tally/internal/diagfmt"
)

const configFileName = "tally.toml"

type fileConfig struct {
	Output outputConfig `toml:"output"`
	Eval   evalConfig   `toml:"eval"`
	Trace  traceConfig  `toml:"trace"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type evalConfig struct {
	Jobs           int `toml:"jobs"`
	MaxDiagnostics int `toml:"max_diagnostics"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// settings is the merged view of tally.toml and command-line flags.
type settings struct {
	configPath     string
	format         diagfmt.Format
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	jobs           int
	traceLevel     string
	traceOutput    string
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fileConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// resolveSettings reads tally.toml (explicit --config or the nearest one
// upwards) and overlays flags that were set on the command line.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()
	var cfg fileConfig

	path, _ := flags.GetString("config")
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return settings{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			return settings{}, err
		}
		cfg = loaded
	}

	pick := func(name, fromFile string) string {
		v, _ := flags.GetString(name)
		if flags.Changed(name) || fromFile == "" {
			return v
		}
		return fromFile
	}
	pickInt := func(name string, fromFile int) int {
		v, _ := flags.GetInt(name)
		if flags.Changed(name) || fromFile <= 0 {
			return v
		}
		return fromFile
	}

	s := settings{configPath: path}
	var err error
	if s.format, err = diagfmt.ParseFormat(pick("format", cfg.Output.Format)); err != nil {
		return settings{}, err
	}
	if s.color, err = resolveColor(pick("color", cfg.Output.Color)); err != nil {
		return settings{}, err
	}
	s.quiet, _ = flags.GetBool("quiet")
	s.timings, _ = flags.GetBool("timings")
	s.maxDiagnostics = pickInt("max-diagnostics", cfg.Eval.MaxDiagnostics)
	if flags.Lookup("jobs") != nil {
		s.jobs = pickInt("jobs", cfg.Eval.Jobs)
	} else {
		s.jobs = cfg.Eval.Jobs
	}
	s.traceLevel = pick("trace-level", cfg.Trace.Level)
	s.traceOutput = pick("trace", cfg.Trace.Output)
	return s, nil
}

func resolveColor(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return isTerminal(os.Stderr), nil
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
