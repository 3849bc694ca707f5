package lexer

import (
	"fmt"
	"unicode/utf8"

	"tally/internal/source"

	"fortio.org/safecast"
)

// Cursor walks File.Content rune by rune and keeps the number of bytes
// consumed so far. Runes come out unchanged; Off is always the sum of the
// UTF-8 lengths of the runes already returned by Next.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek декодирует текущую руну, не сдвигая курсор.
// На EOF возвращает utf8.RuneError и размер 0.
func (c *Cursor) Peek() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// Next returns the current rune and advances past it.
// ok is false once the input is exhausted.
func (c *Cursor) Next() (r rune, ok bool) {
	r, size := c.Peek()
	if size == 0 {
		return utf8.RuneError, false
	}
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	c.Off += n
	return r, true
}

// Bytes returns the number of bytes consumed so far.
func (c *Cursor) Bytes() uint32 {
	return c.Off
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}
