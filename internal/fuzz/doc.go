// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the tally pipeline (source -> lexer -> parser -> eval) and check
// that it never panics or hangs and that every span it reports is real.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
