package lexer

import (
	"tally/internal/diag"
)

type Options struct {
	Reporter diag.Reporter // может быть nil; ошибка всё равно возвращается из Next
}

func (lx *Lexer) report(d diag.Diagnostic) {
	diag.Emit(lx.opts.Reporter, d)
}
