package token

import (
	"tally/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is an integer literal.
func (t Token) IsLiteral() bool { return t.Kind == IntLit }

// IsOperator reports whether the token is a binary operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus:
		return true
	default:
		return false
	}
}

// String renders the token in debug form, e.g. IntLit("32") or Plus("+").
func (t Token) String() string {
	return t.Kind.String() + "(\"" + t.Text + "\")"
}
