package lexer

func isDec(r rune) bool { return r >= '0' && r <= '9' }

// isSpace covers the separators allowed between tokens: blanks and line
// breaks. Tabs and carriage returns are unexpected characters.
func isSpace(r rune) bool { return r == ' ' || r == '\n' }
