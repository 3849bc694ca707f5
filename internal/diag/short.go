package diag

import (
	"fmt"
	"strings"

	"tally/internal/source"
)

// FormatShort renders diagnostics one per line:
//
//	error LEX1001 stdin:1:1 unexpected character '`'
//
// Order follows the input slice.
func FormatShort(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		path, line, col := "?", uint32(0), uint32(0)
		if f := fs.Get(d.Primary.File); f != nil {
			start, _ := f.Resolve(d.Primary)
			path, line, col = f.FormatPath("relative", fs.BaseDir()), start.Line, start.Col
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code.ID(), path, line, col, sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
