package driver

// Options configures a pipeline run.
type Options struct {
	MaxDiagnostics int          // лимит Bag; 0 = по умолчанию
	Timings        bool         // добавить OBS6001 с таймингами в Bag
	Sink           ProgressSink // может быть nil
	Jobs           int          // только для EvaluateFiles; <=0 = GOMAXPROCS
}

const defaultMaxDiagnostics = 100

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}
