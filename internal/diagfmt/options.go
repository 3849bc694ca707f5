package diagfmt

import "tally/internal/source"

// PathMode is a source.File.FormatPath mode. The zero value keeps paths as
// they were loaded; stdin always keeps its name.
type PathMode string

// PathRelative shows paths relative to the FileSet base directory.
const PathRelative PathMode = "relative"

func (m PathMode) show(f *source.File, baseDir string) string {
	if f == nil {
		return "?"
	}
	return f.FormatPath(string(m), baseDir)
}

// PrettyOpts configures the annotated report.
type PrettyOpts struct {
	Color     bool
	Context   uint8 // сколько строк до строки с ошибкой показывать
	Paths     PathMode
	ShowNotes bool
}

// DocOpts shapes the structured diagnostics document.
type DocOpts struct {
	Paths     PathMode
	Positions bool // line/col рядом со смещениями
	Limit     int  // обрезает документ, Bag не трогает
}
