// Package observ measures the pipeline stages of one file.
package observ

import (
	"sync"
	"time"
)

// Timer is a stopwatch over named stages. Safe for concurrent use.
type Timer struct {
	mu   sync.Mutex
	laps []lap
}

type lap struct {
	name  string
	start time.Time
	dur   time.Duration
	items int
	done  bool
}

func NewTimer() *Timer { return &Timer{} }

// Begin starts stage name and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.laps = append(t.laps, lap{name: name, start: time.Now()})
	return len(t.laps) - 1
}

// End stops stage idx and records how many tokens, trees or values it
// produced. Unknown and already stopped stages return 0.
func (t *Timer) End(idx, items int) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.laps) || t.laps[idx].done {
		return 0
	}
	l := &t.laps[idx]
	l.dur, l.items, l.done = time.Since(l.start), items, true
	return l.dur
}

// StageReport is one stopped stage.
type StageReport struct {
	Name       string  `json:"name" yaml:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms" msgpack:"duration_ms"`
	Items      int     `json:"items" yaml:"items" msgpack:"items"`
}

// Report sums the stopped stages; running ones are left out.
type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms" msgpack:"total_ms"`
	Stages  []StageReport `json:"stages" yaml:"stages" msgpack:"stages"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, l := range t.laps {
		if !l.done {
			continue
		}
		total += l.dur
		r.Stages = append(r.Stages, StageReport{Name: l.name, DurationMS: ms(l.dur), Items: l.items})
	}
	r.TotalMS = ms(total)
	return r
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
