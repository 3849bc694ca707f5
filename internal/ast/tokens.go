package ast

import (
	"tally/internal/source"
	"tally/internal/token"
)

// LeafToken is the subset of tokens that may stand as an operand.
type LeafToken struct {
	Text string // десятичные цифры, как в исходнике
	Span source.Span
}

// Operator enumerates binary operators.
type Operator uint8

const (
	OpPlus Operator = iota
	// OpCount is the number of operators; keep it last.
	OpCount
)

func (op Operator) String() string {
	switch op {
	case OpPlus:
		return "Plus"
	default:
		return "Operator(?)"
	}
}

// Symbol returns the source spelling of op.
func (op Operator) Symbol() string {
	switch op {
	case OpPlus:
		return "+"
	default:
		return "?"
	}
}

// OperatorToken is the subset of tokens that join two operands.
type OperatorToken struct {
	Op   Operator
	Span source.Span
}

// LeafFromToken narrows tok to a LeafToken. ok is false for non-literals.
func LeafFromToken(tok token.Token) (LeafToken, bool) {
	if tok.Kind != token.IntLit {
		return LeafToken{}, false
	}
	return LeafToken{Text: tok.Text, Span: tok.Span}, true
}

// OperatorFromToken narrows tok to an OperatorToken. ok is false for literals.
func OperatorFromToken(tok token.Token) (OperatorToken, bool) {
	switch tok.Kind {
	case token.Plus:
		return OperatorToken{Op: OpPlus, Span: tok.Span}, true
	default:
		return OperatorToken{}, false
	}
}
