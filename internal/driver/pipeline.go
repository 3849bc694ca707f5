package driver

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strconv"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/eval"
	"tally/internal/lexer"
	"tally/internal/observ"
	"tally/internal/parser"
	"tally/internal/source"
	"tally/internal/token"
	"tally/internal/trace"
)

// Result is the outcome of running the pipeline over one file. Only the
// slice matching the requested stage is filled.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Trees   []ast.Tree
	Values  []eval.Value
	Bag     *diag.Bag
	Err     error // первая ошибка конвейера; nil при успехе
	Timing  *observ.Report
}

// Failed reports whether the pipeline stopped on an error.
func (r *Result) Failed() bool { return r != nil && r.Err != nil }

// Tokenize runs the lexer to completion or its first error.
func Tokenize(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Result {
	return run(ctx, fs, file, opts, StageTokenize, func(r *Result, rep diag.Reporter, traced bool) iter.Seq2[item, error] {
		lx := lexer.New(file, lexer.Options{Reporter: rep})
		return collect(lx.Next, &r.Tokens, traced, func(tok token.Token) item {
			return item{text: tok.String(), span: tok.Span}
		})
	})
}

// Parse runs lexer and tree builder to completion or the first error.
func Parse(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Result {
	return run(ctx, fs, file, opts, StageParse, func(r *Result, rep diag.Reporter, traced bool) iter.Seq2[item, error] {
		lx := lexer.New(file, lexer.Options{Reporter: rep})
		p := parser.New(file, lx, parser.Options{Reporter: rep})
		return collect(p.Next, &r.Trees, traced, func(t ast.Tree) item {
			return item{text: ast.Dump(t), span: t.Span()}
		})
	})
}

// Evaluate runs the whole pipeline to completion or the first error.
func Evaluate(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Result {
	return run(ctx, fs, file, opts, StageEval, func(r *Result, rep diag.Reporter, traced bool) iter.Seq2[item, error] {
		lx := lexer.New(file, lexer.Options{Reporter: rep})
		tap := &treeTap{src: parser.New(file, lx, parser.Options{Reporter: rep})}
		ev := eval.New(file, tap, eval.Options{Reporter: rep})
		return collect(ev.Next, &r.Values, traced, func(v eval.Value) item {
			return item{text: exprText(file, tap.last) + " = " + v.String(), span: tap.last}
		})
	})
}

// treeTap remembers the span of the last tree handed to the evaluator so
// that each value can be traced back to its expression.
type treeTap struct {
	src  eval.TreeSource
	last source.Span
}

func (t *treeTap) Next() (ast.Tree, error) {
	tree, err := t.src.Next()
	if err == nil {
		t.last = tree.Span()
	}
	return tree, err
}

func exprText(file *source.File, sp source.Span) string {
	if int(sp.End) > len(file.Content) || sp.Start > sp.End {
		return "?"
	}
	return string(file.Content[sp.Start:sp.End])
}

// item is one token, tree or value with the source range it came from.
type item struct {
	text string
	span source.Span
}

// collect pulls from next until io.EOF, appending every result to dst.
// With traced set it also yields the described form of each result.
func collect[T any](next func() (T, error), dst *[]T, traced bool, describe func(T) item) iter.Seq2[item, error] {
	return func(yield func(item, error) bool) {
		for {
			v, err := next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(item{}, err)
				return
			}
			*dst = append(*dst, v)
			var it item
			if traced {
				it = describe(v)
			}
			if !yield(it, nil) {
				return
			}
		}
	}
}

type stageFunc func(r *Result, rep diag.Reporter, traced bool) iter.Seq2[item, error]

func run(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, stage Stage, build stageFunc) *Result {
	r := &Result{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeStage, string(stage), trace.CurrentSpan(ctx))
	timer := observ.NewTimer()
	idx := timer.Begin(string(stage))
	emit(opts.Sink, Event{File: file.Path, Stage: stage, Status: StatusWorking})

	items := 0
	traced := tracer.Level().Admits(trace.ScopeExpr)
	for it, err := range build(r, diag.BagReporter{Bag: r.Bag}, traced) {
		if err != nil {
			r.Err = err
			trace.Point(tracer, trace.ScopeError, string(stage), err.Error(), span.ID())
			break
		}
		items++
		if traced {
			at := file.Position(it.span.Start)
			trace.Point(tracer, trace.ScopeExpr, string(stage), it.text, span.ID(),
				trace.Attr{Key: "n", Value: strconv.Itoa(items)},
				trace.Attr{Key: "at", Value: fmt.Sprintf("%d:%d", at.Line, at.Col)})
		}
		if cerr := ctx.Err(); cerr != nil {
			r.Err = cerr
			break
		}
	}

	elapsed := timer.End(idx, items)
	span.Set("items", strconv.Itoa(items)).End(errDetail(r.Err))
	report := timer.Report()
	r.Timing = &report
	if opts.Timings {
		appendTimingDiagnostic(r.Bag, timingPayload{Stage: string(stage), Path: file.Path, TotalMS: report.TotalMS, Stages: report.Stages})
	}

	status := StatusDone
	if r.Err != nil {
		status = StatusError
	}
	emit(opts.Sink, Event{File: file.Path, Stage: stage, Status: status, Items: items, Err: r.Err, Elapsed: elapsed})
	return r
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	if de, ok := diag.AsError(err); ok {
		return de.Diag.Code.ID()
	}
	return err.Error()
}
