package diagfmt

import (
	"fmt"
	"io"

	"tally/internal/ast"
	"tally/internal/eval"
	"tally/internal/source"
	"tally/internal/token"
)

// SpanOutput is a byte range in serialised output.
type SpanOutput struct {
	Start uint32 `json:"start" yaml:"start" msgpack:"start"`
	End   uint32 `json:"end" yaml:"end" msgpack:"end"`
}

func makeSpan(sp source.Span) SpanOutput {
	return SpanOutput{Start: sp.Start, End: sp.End}
}

type TokenOutput struct {
	Kind string     `json:"kind" yaml:"kind" msgpack:"kind"`
	Text string     `json:"text" yaml:"text" msgpack:"text"`
	Span SpanOutput `json:"span" yaml:"span" msgpack:"span"`
	Line uint32     `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Col  uint32     `json:"col,omitempty" yaml:"col,omitempty" msgpack:"col,omitempty"`
}

type TreeOutput struct {
	Kind     string      `json:"kind" yaml:"kind" msgpack:"kind"` // leaf | operation
	Text     string      `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Operator string      `json:"operator,omitempty" yaml:"operator,omitempty" msgpack:"operator,omitempty"`
	Span     SpanOutput  `json:"span" yaml:"span" msgpack:"span"`
	Left     *TreeOutput `json:"left,omitempty" yaml:"left,omitempty" msgpack:"left,omitempty"`
	Right    *TreeOutput `json:"right,omitempty" yaml:"right,omitempty" msgpack:"right,omitempty"`
}

type ValueOutput struct {
	Kind  string `json:"kind" yaml:"kind" msgpack:"kind"`
	Value int32  `json:"value" yaml:"value" msgpack:"value"`
}

// ResultsOutput is the root document for structured result output. Only
// the section matching the command is filled.
type ResultsOutput struct {
	File   string        `json:"file" yaml:"file" msgpack:"file"`
	Tokens []TokenOutput `json:"tokens,omitempty" yaml:"tokens,omitempty" msgpack:"tokens,omitempty"`
	Trees  []TreeOutput  `json:"trees,omitempty" yaml:"trees,omitempty" msgpack:"trees,omitempty"`
	Values []ValueOutput `json:"values,omitempty" yaml:"values,omitempty" msgpack:"values,omitempty"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty" msgpack:"error,omitempty"`
}

// BuildTree converts a syntax tree into its serialisable form.
func BuildTree(t ast.Tree) TreeOutput {
	switch n := t.(type) {
	case *ast.Leaf:
		return TreeOutput{Kind: "leaf", Text: n.Token.Text, Span: makeSpan(n.Span())}
	case *ast.Operation:
		left, right := BuildTree(n.Left), BuildTree(n.Right)
		return TreeOutput{
			Kind:     "operation",
			Operator: n.Operator.Op.String(),
			Span:     makeSpan(n.Span()),
			Left:     &left,
			Right:    &right,
		}
	default:
		return TreeOutput{Kind: "invalid"}
	}
}

// FormatTokens выводит токены; в pretty по одному на строку с позицией.
func FormatTokens(w io.Writer, format Format, file *source.File, tokens []token.Token, runErr error) error {
	if format == FormatPretty {
		for i, tok := range tokens {
			start, _ := file.Resolve(tok.Span)
			if _, err := fmt.Fprintf(w, "%3d: %-16s at %d:%d\n", i+1, tok.String(), start.Line, start.Col); err != nil {
				return err
			}
		}
		return nil
	}
	out := ResultsOutput{File: file.Path, Tokens: make([]TokenOutput, 0, len(tokens)), Error: errText(runErr)}
	for _, tok := range tokens {
		start, _ := file.Resolve(tok.Span)
		out.Tokens = append(out.Tokens, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: makeSpan(tok.Span),
			Line: start.Line,
			Col:  start.Col,
		})
	}
	return encode(w, format, out)
}

// FormatTrees выводит деревья; в pretty ast.Dump по одному на строку.
func FormatTrees(w io.Writer, format Format, file *source.File, trees []ast.Tree, runErr error) error {
	if format == FormatPretty {
		for _, t := range trees {
			if _, err := fmt.Fprintln(w, ast.Dump(t)); err != nil {
				return err
			}
		}
		return nil
	}
	out := ResultsOutput{File: file.Path, Trees: make([]TreeOutput, 0, len(trees)), Error: errText(runErr)}
	for _, t := range trees {
		out.Trees = append(out.Trees, BuildTree(t))
	}
	return encode(w, format, out)
}

// FormatValues prints each value on its own line in debug form (I32(83))
// or encodes them as a document.
func FormatValues(w io.Writer, format Format, file *source.File, values []eval.Value, runErr error) error {
	if format == FormatPretty {
		for _, v := range values {
			if _, err := fmt.Fprintln(w, v.String()); err != nil {
				return err
			}
		}
		return nil
	}
	out := ResultsOutput{File: file.Path, Values: make([]ValueOutput, 0, len(values)), Error: errText(runErr)}
	for _, v := range values {
		out.Values = append(out.Values, ValueOutput{Kind: v.Kind.String(), Value: v.I32})
	}
	return encode(w, format, out)
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
