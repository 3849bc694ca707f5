package driver

import "time"

// Stage names a step a file goes through. Evaluate runs the whole
// pipeline as one StageEval.
type Stage string

const (
	StageLoad     Stage = "load"
	StageTokenize Stage = "tokenize"
	StageParse    Stage = "parse"
	StageEval     Stage = "eval"
)

// Status is where a file stands within a stage.
type Status uint8

const (
	StatusQueued  Status = iota // ждёт свободного воркера
	StatusWorking               // стадия идёт
	StatusDone
	StatusError // стадия остановилась на ошибке, она в Event.Err
)

var statusNames = [...]string{"queued", "working", "done", "error"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Event reports that a file entered a stage or left it.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Items   int // токены, деревья или значения; только в done/error
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events. EvaluateFiles reports from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

// ChannelSink sends events into Ch; a nil Ch drops them. Sends block, so
// the reader must keep draining until the run returns.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
