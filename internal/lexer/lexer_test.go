package lexer_test

import (
	"errors"
	"io"
	"testing"

	"tally/internal/diag"
	"tally/internal/lexer"
	"tally/internal/source"
	"tally/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string, opts lexer.Options) *lexer.Lexer {
	fs := source.NewFileSet()
	id := fs.AddVirtual("stdin", []byte(input))
	return lexer.New(fs.Get(id), opts)
}

type item struct {
	tok token.Token
	err error
}

func collect(lx *lexer.Lexer) []item {
	var out []item
	for tok, err := range lx.All() {
		out = append(out, item{tok, err})
	}
	return out
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"digit", "3", []string{`IntLit("3")`}},
		{"digits", "1234567890", []string{`IntLit("1234567890")`}},
		{"two numbers", "33 6", []string{`IntLit("33")`, `IntLit("6")`}},
		{"addition", "34 + 61", []string{`IntLit("34")`, `Plus("+")`, `IntLit("61")`}},
		{"no spaces", "34+61", []string{`IntLit("34")`, `Plus("+")`, `IntLit("61")`}},
		{"newlines", "3\n4\n\n5\n", []string{`IntLit("3")`, `IntLit("4")`, `IntLit("5")`}},
		{"only spaces", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := collect(makeTestLexer(tt.input, lexer.Options{}))
			if len(items) != len(tt.want) {
				t.Fatalf("got %d items, want %d: %v", len(items), len(tt.want), items)
			}
			for i, it := range items {
				if it.err != nil {
					t.Fatalf("item %d: unexpected error %v", i, it.err)
				}
				if got := it.tok.String(); got != tt.want[i] {
					t.Errorf("item %d: %s, want %s", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestLexerSpans(t *testing.T) {
	items := collect(makeTestLexer("34 + 61", lexer.Options{}))
	want := [][2]uint32{{0, 2}, {3, 4}, {5, 7}}
	for i, it := range items {
		if it.tok.Span.Start != want[i][0] || it.tok.Span.End != want[i][1] {
			t.Errorf("token %d span %v, want %v", i, it.tok.Span, want[i])
		}
	}
}

func TestLexerStopsAfterError(t *testing.T) {
	tests := []struct {
		input string
		items int
	}{
		{"33 6 ' 5 5", 3},
		{"7 16 52 ' 9 8", 4},
		{"'", 1},
	}
	for _, tt := range tests {
		items := collect(makeTestLexer(tt.input, lexer.Options{}))
		if len(items) != tt.items {
			t.Fatalf("%q: got %d items, want %d", tt.input, len(items), tt.items)
		}
		last := items[len(items)-1]
		if !errors.Is(last.err, diag.ErrUnexpectedCharacter) {
			t.Errorf("%q: last item error = %v", tt.input, last.err)
		}
	}
}

func TestLexerHaltedReturnsEOF(t *testing.T) {
	lx := makeTestLexer("' 1 2", lexer.Options{})
	if _, err := lx.Next(); err == nil || err == io.EOF {
		t.Fatalf("expected lexing error, got %v", err)
	}
	for range 3 {
		if _, err := lx.Next(); err != io.EOF {
			t.Fatalf("expected io.EOF after error, got %v", err)
		}
	}
}

func TestUnexpectedCharacterSpan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start uint32
		width uint32
	}{
		{"backtick", "`", 0, 1},
		{"after newlines", "3\n4\n87 'sd", 7, 1},
		{"tab", "1\t2", 1, 1},
		{"carriage return", "1\r\n2", 1, 1},
		{"two-byte rune", "1 é", 2, 2},
		{"three-byte rune", "中", 0, 3},
		{"four-byte rune", "💦", 0, 4},
		{"four-byte rune after digits", "3 a💦", 2, 1},
		{"four-byte rune mid-line", "3 + 4💦", 5, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last error
			for _, err := range makeTestLexer(tt.input, lexer.Options{}).All() {
				last = err
			}
			de, ok := diag.AsError(last)
			if !ok {
				t.Fatalf("expected *diag.Error, got %v", last)
			}
			sp := de.Span()
			if sp.Start != tt.start || sp.Len() != tt.width {
				t.Errorf("span %v, want start %d width %d", sp, tt.start, tt.width)
			}
			if de.Diag.Code != diag.LexUnexpectedCharacter {
				t.Errorf("code %s", de.Diag.Code.ID())
			}
		})
	}
}

func TestLexerReportsToReporter(t *testing.T) {
	bag := diag.NewBag(10)
	collect(makeTestLexer("1 + x", lexer.Options{Reporter: diag.BagReporter{Bag: bag}}))
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	if got := bag.Items()[0].Message; got != "unexpected character 'x'" {
		t.Errorf("message %q", got)
	}
}
