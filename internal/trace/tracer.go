package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Tracer receives events. Emit must be safe for concurrent use: files of
// one run are evaluated in parallel.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	Close() error
}

type nop struct{}

func (nop) Emit(*Event)  {}
func (nop) Level() Level { return LevelOff }
func (nop) Close() error { return nil }

// Nop drops everything.
var Nop Tracer = nop{}

// Mode selects where events go.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // сразу в writer
	ModeRing                   // в память, выводятся в конце команды
)

// ParseMode accepts "stream" or "ring".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	}
	return ModeStream, fmt.Errorf("unknown trace mode %q (want stream|ring)", s)
}

// Config describes the tracer of one run.
type Config struct {
	Level      Level
	Mode       Mode
	Format     Format
	Output     io.Writer // если nil, используется OutputPath
	OutputPath string    // "" и "-" означают stderr
	RingSize   int
	RunID      string // по умолчанию новый UUID
}

// New builds the tracer cfg describes. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	switch cfg.Mode {
	case ModeRing:
		return NewRing(cfg.RingSize, cfg.Level, cfg.RunID), nil
	case ModeStream, 0:
		w, closer, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		s := NewStream(w, cfg.Level, cfg.Format.resolve(cfg.OutputPath), cfg.RunID)
		s.closer = closer
		return s, nil
	}
	return nil, fmt.Errorf("unknown trace mode %d", cfg.Mode)
}

// openOutput returns a closer only for files it created itself.
func openOutput(cfg Config) (io.Writer, io.Closer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, f, nil
}
