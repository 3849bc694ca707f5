// Package token defines lexical token kinds for the tally calculator.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - IntLit text is a non-empty run of ASCII digits.
//   - Whitespace never produces tokens.
package token
