package fuzztests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"tally/internal/diag"
	"tally/internal/eval"
	"tally/internal/lexer"
	"tally/internal/parser"
	"tally/internal/source"
	"tally/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// pipelineTimeout is the maximum time allowed for one input. Exceeding it
// means a stage stopped making progress.
const pipelineTimeout = 5 * time.Second

func fuzzFile(input []byte) *source.File {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("fuzz.tl", append([]byte(nil), input...)))
}

// checkError requires err to be a *diag.Error whose span lies in file.
func checkError(file *source.File, err error) error {
	de, ok := diag.AsError(err)
	if !ok {
		return fmt.Errorf("error is not a diagnostic: %T %v", err, err)
	}
	sp := de.Span()
	if sp.File != file.ID || sp.Start >= sp.End || int(sp.End) > len(file.Content) {
		return fmt.Errorf("%s: bad span %v for %d bytes", de.Diag.Code.ID(), sp, len(file.Content))
	}
	return nil
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file := fuzzFile(input)
		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var prevEnd uint32
		for tok, err := range lx.All() {
			if err != nil {
				if cerr := checkError(file, err); cerr != nil {
					t.Fatal(cerr)
				}
				if bag.Len() != 1 {
					t.Fatalf("expected exactly one reported diagnostic, got %d", bag.Len())
				}
				break
			}
			if tok.Span.Start < prevEnd || tok.Span.End <= tok.Span.Start {
				t.Fatalf("token %s span %v overlaps previous end %d", tok, tok.Span, prevEnd)
			}
			if got := string(file.Content[tok.Span.Start:tok.Span.End]); got != tok.Text {
				t.Fatalf("token text %q differs from source %q", tok.Text, got)
			}
			prevEnd = tok.Span.End
		}
		// после ошибки или конца лексер молчит
		if _, err := lx.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("exhausted lexer returned %v", err)
		}
	})
}

func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		file := fuzzFile(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			lx := lexer.New(file, lexer.Options{})
			p := parser.New(file, lx, parser.Options{})
			for tree, err := range p.All() {
				if err != nil {
					if cerr := checkError(file, err); cerr != nil {
						t.Error(cerr)
					}
					return
				}
				if cerr := testkit.CheckTreeSpans(tree, file); cerr != nil {
					t.Errorf("tree invariant: %v", cerr)
					return
				}
				ev := eval.New(file, nil, eval.Options{})
				if _, err := ev.Eval(tree); err != nil {
					if cerr := checkError(file, err); cerr != nil {
						t.Error(cerr)
					}
				}
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("pipeline hang detected after %v on %d bytes", pipelineTimeout, len(file.Content))
		}
	})
}
