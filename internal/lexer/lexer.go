package lexer

import (
	"io"
	"iter"

	"tally/internal/source"
	"tally/internal/token"
)

// Lexer turns a file into tokens on demand. It is fail-stop: after the
// first error every further call to Next returns io.EOF.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	halted bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен.
// Конец входа и остановка после ошибки сообщаются как io.EOF.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.halted {
		return token.Token{}, io.EOF
	}
	for {
		r, size := lx.cursor.Peek()
		switch {
		case size == 0:
			lx.halted = true
			return token.Token{}, io.EOF
		case isSpace(r):
			lx.cursor.Next()
		case isDec(r):
			return lx.scanNumber(), nil
		case r == '+':
			return lx.scanOperator(), nil
		default:
			lx.cursor.Next()
			lx.halted = true
			return token.Token{}, lx.unexpected(r, size)
		}
	}
}

// All adapts the lexer to a range-over-func sequence. The terminal error,
// if any, is yielded as the last pair.
func (lx *Lexer) All() iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		for {
			tok, err := lx.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }
