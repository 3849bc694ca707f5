package ui

import (
	"strings"
	"testing"
	"time"

	"tally/internal/diag"
	"tally/internal/driver"
)

func TestEvalViewAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	v := NewEvalView("eval", []string{"a.calc", "b.calc"}, events).(*evalView)

	overflow := diag.NewErrorFor(nil, diag.Diagnostic{Code: diag.EvalArithmeticOverflow, Severity: diag.SevError})
	steps := []struct {
		ev   driver.Event
		path string
		want rowState
	}{
		{driver.Event{File: "a.calc", Stage: driver.StageLoad, Status: driver.StatusWorking}, "a.calc", rowLoading},
		{driver.Event{File: "a.calc", Stage: driver.StageEval, Status: driver.StatusWorking}, "a.calc", rowEvaluating},
		{driver.Event{File: "a.calc", Stage: driver.StageEval, Status: driver.StatusDone, Items: 3, Elapsed: 2 * time.Millisecond}, "a.calc", rowDone},
		{driver.Event{File: "b.calc", Stage: driver.StageEval, Status: driver.StatusError, Items: 1, Err: overflow}, "b.calc", rowFailed},
	}
	for _, st := range steps {
		v.Update(eventMsg(st.ev))
		if got := v.rows[v.byPath[st.path]].state; got != st.want {
			t.Errorf("%s after %s/%s: %s, want %s", st.path, st.ev.Stage, st.ev.Status, rowLabels[got], rowLabels[st.want])
		}
	}
	v.Update(eventMsg(driver.Event{File: "unknown", Stage: driver.StageEval, Status: driver.StatusDone}))

	finished, failed, values := v.totals()
	if finished != 2 || failed != 1 || values != 4 {
		t.Errorf("totals %d/%d/%d", finished, failed, values)
	}
	view := v.View()
	for _, want := range []string{"eval 2/2 files, 4 values, 1 failed", "3 values", "EVL3002 after 1 value", "2ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	if _, cmd := v.Update(closedMsg{}); cmd == nil || !v.stopped {
		t.Error("closed channel must quit")
	}
	if !strings.Contains(v.View(), "done: eval") {
		t.Error("final header missing")
	}
}

func TestEvalViewFraction(t *testing.T) {
	v := NewEvalView("eval", []string{"a", "b", "c", "d"}, nil).(*evalView)
	v.rows[0].state = rowDone
	v.rows[1].state = rowEvaluating
	v.rows[2].state = rowLoading
	if got := v.fraction(); got != (1+0.5+0.25)/4 {
		t.Errorf("fraction = %v", got)
	}
}

func TestNextOnClosedChannel(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	v := NewEvalView("eval", []string{"x"}, events).(*evalView)
	if _, ok := v.next()().(closedMsg); !ok {
		t.Error("closed channel must produce closedMsg")
	}
}

func TestTruncateKeepsFileName(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"very/long/path/to/file.calc", 12, "...file.calc"},
		{"abcdef", 2, "ef"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	for n, want := range map[int]string{0: "0 values", 1: "1 value", 2: "2 values"} {
		if got := plural(n, "value"); got != want {
			t.Errorf("plural(%d) = %q", n, got)
		}
	}
}
