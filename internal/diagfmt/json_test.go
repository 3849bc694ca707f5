package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/lexer"
	"tally/internal/parser"
	"tally/internal/source"
	"tally/internal/token"
)

func sampleBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("stdin", []byte("1 +\n2 3"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 6, End: 7}, "unexpected token \"3\""))
	return bag, fs
}

func TestDiagnosticsJSON(t *testing.T) {
	bag, fs := sampleBag()
	bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.ObsTimings, Message: "eval 0.10 ms"})
	var buf bytes.Buffer
	if err := Diagnostics(&buf, FormatJSON, bag, fs, PrettyOpts{}, DocOpts{Positions: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(out.Diagnostics) != 2 || out.Errors != 1 {
		t.Fatalf("diagnostics = %d, errors = %d", len(out.Diagnostics), out.Errors)
	}
	d := out.Diagnostics[0]
	want := Location{File: "stdin", Start: Position{Offset: 6, Line: 2, Col: 3}, End: Position{Offset: 7, Line: 2, Col: 4}}
	if d.Code != "SYN2001" || d.Severity != "error" || d.Location != want {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if out.Diagnostics[1].Severity != "info" {
		t.Errorf("second entry %+v", out.Diagnostics[1])
	}
	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("dropped must be omitted when nothing was cut")
	}
}

func TestDiagnosticsWithoutPositions(t *testing.T) {
	bag, fs := sampleBag()
	out := BuildDiagnostics(bag, fs, DocOpts{})
	if loc := out.Diagnostics[0].Location; loc.Start.Line != 0 || loc.Start.Offset != 6 {
		t.Errorf("location %+v", loc)
	}
}

func TestDiagnosticsDropped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("stdin", []byte("1 2 3"))
	bag := diag.NewBag(2)
	for _, start := range []uint32{2, 4, 4} {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: start, End: start + 1}, "unexpected token"))
	}
	tests := []struct {
		limit         int
		kept, dropped int
	}{
		{0, 2, 1}, // Bag
		{1, 1, 2}, // Bag и Limit
	}
	for _, tt := range tests {
		out := BuildDiagnostics(bag, fs, DocOpts{Limit: tt.limit})
		if len(out.Diagnostics) != tt.kept || out.Dropped != tt.dropped {
			t.Errorf("limit %d: kept %d, dropped %d", tt.limit, len(out.Diagnostics), out.Dropped)
		}
	}
}

func TestDiagnosticsYAMLAndMsgpack(t *testing.T) {
	bag, fs := sampleBag()

	var y bytes.Buffer
	if err := Diagnostics(&y, FormatYAML, bag, fs, PrettyOpts{}, DocOpts{}); err != nil {
		t.Fatal(err)
	}
	var fromYAML DiagnosticsOutput
	if err := yaml.Unmarshal(y.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML.Errors != 1 || fromYAML.Diagnostics[0].Location.Start.Offset != 6 {
		t.Errorf("yaml decoded %+v", fromYAML)
	}

	var m bytes.Buffer
	if err := Diagnostics(&m, FormatMsgpack, bag, fs, PrettyOpts{}, DocOpts{}); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack DiagnosticsOutput
	if err := msgpack.Unmarshal(m.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}
	if fromMsgpack.Diagnostics[0].Code != "SYN2001" {
		t.Errorf("msgpack decoded %+v", fromMsgpack)
	}
}

func TestFormatTreesJSON(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("stdin", []byte("82 + 1")))
	p := parser.New(file, lexer.New(file, lexer.Options{}), parser.Options{})
	var trees []ast.Tree
	for tree, err := range p.All() {
		if err != nil {
			t.Fatal(err)
		}
		trees = append(trees, tree)
	}

	var buf bytes.Buffer
	if err := FormatTrees(&buf, FormatJSON, file, trees, nil); err != nil {
		t.Fatal(err)
	}
	var out ResultsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Trees) != 1 {
		t.Fatalf("trees: %+v", out.Trees)
	}
	root := out.Trees[0]
	if root.Kind != "operation" || root.Operator != "Plus" || root.Left.Text != "82" || root.Right.Text != "1" {
		t.Errorf("tree %+v", root)
	}
	if root.Span.Start != 0 || root.Span.End != 6 {
		t.Errorf("span %+v", root.Span)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("stdin", []byte("34 +\n61")))
	var toks []token.Token
	for tok, err := range lexer.New(file, lexer.Options{}).All() {
		if err != nil {
			t.Fatal(err)
		}
		toks = append(toks, tok)
	}
	var buf bytes.Buffer
	if err := FormatTokens(&buf, FormatPretty, file, toks, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: %q", lines)
	}
	if !strings.Contains(lines[2], `IntLit("61")`) || !strings.HasSuffix(lines[2], "at 2:1") {
		t.Errorf("line 3 = %q", lines[2])
	}
}
