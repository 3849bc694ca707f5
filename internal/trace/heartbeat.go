package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a beat every interval until the returned stop is called.
// Each beat carries how many events the process has sequenced so far; a
// count that stops growing between beats means the run is stuck.
// stop is safe to call more than once.
func Heartbeat(t Tracer, interval time.Duration) (stop func()) {
	if t == nil || !t.Level().Admits(ScopeRun) || interval <= 0 {
		return func() {}
	}
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for n := 1; ; n++ {
			select {
			case <-quit:
				return
			case <-tick.C:
				events := strconv.FormatUint(seq.Load(), 10)
				emit(t, Event{Kind: KindBeat, Scope: ScopeRun, Name: "heartbeat", Detail: "#" + strconv.Itoa(n), Attrs: []Attr{{Key: "events", Value: events}}})
			}
		}
	}()
	return sync.OnceFunc(func() {
		close(quit)
		<-done
	})
}
