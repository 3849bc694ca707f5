package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never emits it.
	Invalid Kind = iota
	// IntLit represents a run of ASCII digits.
	IntLit
	// Plus represents the plus operator token.
	Plus // +
)

func (k Kind) String() string {
	switch k {
	case IntLit:
		return "IntLit"
	case Plus:
		return "Plus"
	default:
		return "Invalid"
	}
}
