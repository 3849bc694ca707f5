package lexer

import (
	"fmt"
	"strconv"

	"tally/internal/diag"
	"tally/internal/source"
	"tally/internal/token"

	"fortio.org/safecast"
)

// scanNumber забирает цифры жадно; первая не-цифра остаётся в курсоре.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for {
		r, size := lx.cursor.Peek()
		if size == 0 || !isDec(r) {
			break
		}
		lx.cursor.Next()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: token.IntLit,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Next()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: token.Plus,
		Span: sp,
		Text: "+",
	}
}

// unexpected builds the error for a rune that was just consumed. The offset
// is recovered from the tracked byte count minus the rune's own length.
func (lx *Lexer) unexpected(r rune, size int) error {
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	sp := source.SpanAt(lx.file.ID, lx.cursor.Bytes()-n, n)
	d := diag.NewError(diag.LexUnexpectedCharacter, sp,
		"unexpected character "+strconv.QuoteRune(r)).
		WithLabel("not a digit, '+', space or newline")
	lx.report(d)
	return diag.NewErrorFor(lx.file, d)
}
