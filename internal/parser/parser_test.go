package parser_test

import (
	"errors"
	"io"
	"testing"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/lexer"
	"tally/internal/parser"
	"tally/internal/source"
	"tally/internal/token"
)

func makeParser(input string) *parser.Parser {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("stdin", []byte(input)))
	return parser.New(file, lexer.New(file, lexer.Options{}), parser.Options{})
}

type result struct {
	trees []string
	err   error
}

func parseAll(input string) result {
	var r result
	for tree, err := range makeParser(input).All() {
		if err != nil {
			r.err = err
			break
		}
		r.trees = append(r.trees, ast.Dump(tree))
	}
	return r
}

func TestParseValid(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"51", []string{`Leaf(Integer("51"))`}},
		{"82 + 1", []string{`Operation(Plus, Leaf(Integer("82")), Leaf(Integer("1")))`}},
		{"1 + 2 4", []string{
			`Operation(Plus, Leaf(Integer("1")), Leaf(Integer("2")))`,
			`Leaf(Integer("4"))`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := parseAll(tt.input)
			if r.err != nil {
				t.Fatalf("unexpected error: %v", r.err)
			}
			if len(r.trees) != len(tt.want) {
				t.Fatalf("got %v, want %v", r.trees, tt.want)
			}
			for i := range r.trees {
				if r.trees[i] != tt.want[i] {
					t.Errorf("tree %d: %s, want %s", i, r.trees[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		sentinel error
		start    uint32
		end      uint32
	}{
		{"3 +", diag.ErrUnexpectedEndOfInput, 2, 3},
		{"3 3", diag.ErrUnexpectedToken, 2, 3},
		{"3 + +", diag.ErrUnexpectedToken, 4, 5},
		{"+ 3", diag.ErrUnexpectedToken, 0, 1},
		{"1 + 2 +", diag.ErrUnexpectedToken, 6, 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := parseAll(tt.input)
			if !errors.Is(r.err, tt.sentinel) {
				t.Fatalf("error = %v, want %v", r.err, tt.sentinel)
			}
			de, _ := diag.AsError(r.err)
			if sp := de.Span(); sp.Start != tt.start || sp.End != tt.end {
				t.Errorf("span %v, want %d-%d", sp, tt.start, tt.end)
			}
		})
	}
}

func TestParsePropagatesLexerError(t *testing.T) {
	r := parseAll("1 + 2 '")
	if len(r.trees) != 1 {
		t.Fatalf("trees before error: %v", r.trees)
	}
	if !errors.Is(r.err, diag.ErrUnexpectedCharacter) {
		t.Fatalf("error = %v", r.err)
	}
}

func TestParserHaltsAfterError(t *testing.T) {
	p := makeParser("+ 1 2")
	if _, err := p.Next(); err == nil || err == io.EOF {
		t.Fatalf("expected error, got %v", err)
	}
	if _, err := p.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF after error, got %v", err)
	}
}

// sliceSource отдаёт заранее заданные токены
type sliceSource struct {
	toks []token.Token
}

func (s *sliceSource) Next() (token.Token, error) {
	if len(s.toks) == 0 {
		return token.Token{}, io.EOF
	}
	tok := s.toks[0]
	s.toks = s.toks[1:]
	return tok, nil
}

func TestParserAcceptsAnyTokenSource(t *testing.T) {
	src := &sliceSource{toks: []token.Token{
		{Kind: token.IntLit, Text: "7"},
		{Kind: token.Plus, Text: "+"},
		{Kind: token.IntLit, Text: "8"},
	}}
	bag := diag.NewBag(4)
	p := parser.New(nil, src, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	tree, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.(*ast.Operation); !ok {
		t.Fatalf("expected operation, got %T", tree)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}
