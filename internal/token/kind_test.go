package token_test

import (
	"testing"

	"tally/internal/source"
	"tally/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: uint32(len(text))}, Text: text}
}

func TestIsLiteral(t *testing.T) {
	if !tok(token.IntLit, "32").IsLiteral() {
		t.Fatalf("IntLit should be literal")
	}
	if tok(token.Plus, "+").IsLiteral() {
		t.Fatalf("Plus must NOT be literal")
	}
}

func TestIsOperator(t *testing.T) {
	if !tok(token.Plus, "+").IsOperator() {
		t.Fatalf("Plus should be operator")
	}
	for _, k := range []token.Kind{token.IntLit, token.Invalid} {
		if tok(k, "").IsOperator() {
			t.Fatalf("%v must NOT be operator", k)
		}
	}
}

func TestString(t *testing.T) {
	cases := map[token.Token]string{
		tok(token.IntLit, "32"): `IntLit("32")`,
		tok(token.Plus, "+"):    `Plus("+")`,
	}
	for in, want := range cases {
		if got := in.String(); got != want {
			t.Errorf("String() = %s, want %s", got, want)
		}
	}
	if token.Kind(200).String() != "Invalid" {
		t.Errorf("unknown kinds render as Invalid")
	}
}
