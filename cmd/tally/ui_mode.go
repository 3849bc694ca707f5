package main

import (
	"fmt"
	"os"
	"strings"

	"tally/internal/diagfmt"
)

// progressMode is the value of `eval --ui`. It implements pflag.Value, so
// a bad value fails while flags are parsed.
type progressMode uint8

const (
	progressAuto progressMode = iota // только если stdout и stderr терминалы
	progressOn
	progressOff
)

var progressModeNames = [...]string{"auto", "on", "off"}

func (m progressMode) String() string {
	if int(m) < len(progressModeNames) {
		return progressModeNames[m]
	}
	return "unknown"
}

func (*progressMode) Type() string { return "auto|on|off" }

func (m *progressMode) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		*m = progressAuto
		return nil
	}
	for i, name := range progressModeNames {
		if s == name {
			*m = progressMode(i)
			return nil
		}
	}
	return fmt.Errorf("want auto, on or off, got %q", s)
}

// showProgress decides whether a multi-file run draws the live view.
// Only pretty output gets it, and --quiet always wins.
func (m progressMode) showProgress(s settings) bool {
	if s.quiet || s.format != diagfmt.FormatPretty {
		return false
	}
	switch m {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	return isTerminal(os.Stdout) && isTerminal(os.Stderr)
}
