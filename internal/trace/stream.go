package trace

import (
	"io"
	"sync"
	"time"
)

// Stream writes every admitted event as soon as it arrives.
type Stream struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	level  Level
	format Format
	runID  string
	start  time.Time
	buf    []byte
}

// NewStream writes to w. The stream never closes w.
func NewStream(w io.Writer, level Level, format Format, runID string) *Stream {
	if format == FormatAuto {
		format = FormatText
	}
	return &Stream{w: w, level: level, format: format, runID: runID, start: time.Now()}
}

func (s *Stream) Emit(ev *Event) {
	if !s.level.Admits(ev.Scope) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.RunID == "" {
		ev.RunID = s.runID
	}
	s.buf = appendEvent(s.buf[:0], ev, s.format, s.start)
	// ошибка записи трейса не должна ронять вычисление
	_, _ = s.w.Write(s.buf) //nolint:errcheck
}

func (s *Stream) Level() Level { return s.level }

// Close closes the output file if New opened it.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
