package observ

import "testing"

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tok := tm.Begin("tokenize")
	tm.End(tok, 3)
	ev := tm.Begin("eval")
	tm.End(ev, 1)
	if tm.End(ev, 7) != 0 {
		t.Error("second End measured time")
	}
	tm.End(99, 0)
	tm.Begin("parse") // не остановлена

	r := tm.Report()
	if len(r.Stages) != 2 {
		t.Fatalf("report %+v", r)
	}
	if s := r.Stages[0]; s.Name != "tokenize" || s.Items != 3 {
		t.Errorf("first stage %+v", s)
	}
	if s := r.Stages[1]; s.Name != "eval" || s.Items != 1 {
		t.Errorf("second stage %+v", s)
	}
	if r.TotalMS < r.Stages[0].DurationMS {
		t.Errorf("total %f smaller than a stage", r.TotalMS)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Stages != nil {
		t.Errorf("empty report %+v", r)
	}
}
