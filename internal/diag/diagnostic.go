package diag

import (
	"tally/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Label    string // подпись под указателем на Primary
	Notes    []Note
}
