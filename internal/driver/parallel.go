package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tally/internal/source"
	"tally/internal/trace"
)

// EvaluateFiles loads every path into one shared FileSet and evaluates the
// files concurrently, at most opts.Jobs at a time. Results keep the order of
// paths. Pipeline errors stay in the per-file Result; only a load failure
// aborts the group and is returned.
func EvaluateFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []*Result, error) {
	fs := source.NewFileSet()
	results := make([]*Result, len(paths))
	if len(paths) == 0 {
		return fs, results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeRun, "evaluate-files", trace.CurrentSpan(ctx))
	defer span.End("")

	for _, p := range paths {
		emit(opts.Sink, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fileSpan := trace.Begin(tracer, trace.ScopeFile, path, span.ID())
			emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
			file, err := LoadFile(fs, path)
			if err != nil {
				emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
				fileSpan.End(errDetail(err))
				return err
			}
			fctx := trace.WithSpan(gctx, fileSpan)
			results[i] = Evaluate(fctx, fs, file, opts)
			fileSpan.End(errDetail(results[i].Err))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fs, results, err
	}
	return fs, results, nil
}
