package parser

import (
	"errors"
	"io"
	"iter"
	"strconv"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/source"
	"tally/internal/token"
)

// TokenSource is anything that hands out tokens one at a time and reports
// the end of input as io.EOF. *lexer.Lexer satisfies it.
type TokenSource interface {
	Next() (token.Token, error)
}

type Options struct {
	Reporter diag.Reporter // может быть nil
}

// Parser — состояние парсера на один файл.
// Каждый вызов Next забирает одно выражение: литерал или литерал '+' литерал.
type Parser struct {
	file   *source.File
	src    TokenSource
	opts   Options
	halted bool
}

// New creates a parser pulling tokens from src. file is used for error
// rendering only.
func New(file *source.File, src TokenSource, opts Options) *Parser {
	return &Parser{file: file, src: src, opts: opts}
}

// Next returns the next expression. io.EOF marks the clean end of input;
// after any other error the parser halts and keeps returning io.EOF.
func (p *Parser) Next() (ast.Tree, error) {
	if p.halted {
		return nil, io.EOF
	}
	tree, err := p.parseExpr()
	if err != nil {
		p.halted = true
	}
	return tree, err
}

// All adapts the parser to a range-over-func sequence. The terminal error,
// if any, is yielded as the last pair.
func (p *Parser) All() iter.Seq2[ast.Tree, error] {
	return func(yield func(ast.Tree, error) bool) {
		for {
			tree, err := p.Next()
			if err == io.EOF {
				return
			}
			if !yield(tree, err) || err != nil {
				return
			}
		}
	}
}

func (p *Parser) parseExpr() (ast.Tree, error) {
	first, err := p.src.Next()
	if err != nil {
		return nil, err
	}
	left, ok := ast.LeafFromToken(first)
	if !ok {
		return nil, p.unexpectedToken(first, "expected an integer literal")
	}

	second, err := p.src.Next()
	if errors.Is(err, io.EOF) {
		return ast.NewLeaf(left), nil
	}
	if err != nil {
		return nil, err
	}
	op, ok := ast.OperatorFromToken(second)
	if !ok {
		return nil, p.unexpectedToken(second, "expected an operator or end of input")
	}

	third, err := p.src.Next()
	if errors.Is(err, io.EOF) {
		return nil, p.unexpectedEnd(op)
	}
	if err != nil {
		return nil, err
	}
	right, ok := ast.LeafFromToken(third)
	if !ok {
		return nil, p.unexpectedToken(third, "expected an integer literal")
	}
	return ast.NewOperation(op, ast.NewLeaf(left), ast.NewLeaf(right)), nil
}

func (p *Parser) unexpectedToken(tok token.Token, label string) error {
	d := diag.NewError(diag.SynUnexpectedToken, tok.Span,
		"unexpected token "+strconv.Quote(tok.Text)).WithLabel(label)
	return p.fail(d)
}

// unexpectedEnd points at the dangling operator: the end of input itself
// has no width to underline.
func (p *Parser) unexpectedEnd(op ast.OperatorToken) error {
	d := diag.NewError(diag.SynUnexpectedEndOfInput, op.Span,
		"unexpected end of file").
		WithLabel("'" + op.Op.Symbol() + "' needs a right operand")
	return p.fail(d)
}

func (p *Parser) fail(d diag.Diagnostic) error {
	diag.Emit(p.opts.Reporter, d)
	return diag.NewErrorFor(p.file, d)
}
