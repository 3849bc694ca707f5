package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const defaultRingSize = 4096

// Ring keeps the most recent events in memory until Dump.
type Ring struct {
	mu    sync.Mutex
	buf   []Event
	total int
	level Level
	runID string
	start time.Time
}

// NewRing keeps the last size events; size <= 0 means 4096.
func NewRing(size int, level Level, runID string) *Ring {
	if size <= 0 {
		size = defaultRingSize
	}
	return &Ring{buf: make([]Event, size), level: level, runID: runID, start: time.Now()}
}

func (r *Ring) Emit(ev *Event) {
	if !r.level.Admits(ev.Scope) {
		return
	}
	stored := *ev
	stored.Attrs = append([]Attr(nil), ev.Attrs...)
	if stored.RunID == "" {
		stored.RunID = r.runID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.total%len(r.buf)] = stored
	r.total++
}

// Events returns the kept events, oldest first.
func (r *Ring) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := min(r.total, len(r.buf))
	out := make([]Event, n)
	first := r.total - n
	for i := range out {
		out[i] = r.buf[(first+i)%len(r.buf)]
	}
	return out
}

// Overwritten returns how many events fell out of the ring.
func (r *Ring) Overwritten() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return max(r.total-len(r.buf), 0)
}

// Dump writes the kept events to w. In text format a leading line says
// how many older events were lost.
func (r *Ring) Dump(w io.Writer, format Format) error {
	if format == FormatAuto {
		format = FormatText
	}
	if lost := r.Overwritten(); lost > 0 && format == FormatText {
		if _, err := fmt.Fprintf(w, "... %d earlier events overwritten\n", lost); err != nil {
			return err
		}
	}
	var buf []byte
	for _, ev := range r.Events() {
		buf = appendEvent(buf[:0], &ev, format, r.start)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func (r *Ring) Level() Level { return r.level }
func (r *Ring) Close() error { return nil }
