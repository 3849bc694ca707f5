package diagfmt

import (
	"tally/internal/diag"
	"tally/internal/source"
)

// Position is one end of a range: a byte offset and, when asked for, the
// 1-based line and byte column.
type Position struct {
	Offset uint32 `json:"offset" yaml:"offset" msgpack:"offset"`
	Line   uint32 `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Col    uint32 `json:"col,omitempty" yaml:"col,omitempty" msgpack:"col,omitempty"`
}

// Location is a range inside a named file.
type Location struct {
	File  string   `json:"file" yaml:"file" msgpack:"file"`
	Start Position `json:"start" yaml:"start" msgpack:"start"`
	End   Position `json:"end" yaml:"end" msgpack:"end"`
}

type NoteOutput struct {
	Message  string   `json:"message" yaml:"message" msgpack:"message"`
	Location Location `json:"location" yaml:"location" msgpack:"location"`
}

type DiagnosticOutput struct {
	Severity string       `json:"severity" yaml:"severity" msgpack:"severity"`
	Code     string       `json:"code" yaml:"code" msgpack:"code"`
	Message  string       `json:"message" yaml:"message" msgpack:"message"`
	Label    string       `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Location Location     `json:"location" yaml:"location" msgpack:"location"`
	Notes    []NoteOutput `json:"notes,omitempty" yaml:"notes,omitempty" msgpack:"notes,omitempty"`
}

// DiagnosticsOutput is the document structured formats write to stderr.
// Errors counts error-severity entries; a run stops at its first error, so
// it is 0 or 1. Dropped counts entries cut by the Bag limit or DocOpts.Limit.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticOutput `json:"diagnostics" yaml:"diagnostics" msgpack:"diagnostics"`
	Errors      int                `json:"errors" yaml:"errors" msgpack:"errors"`
	Dropped     int                `json:"dropped,omitempty" yaml:"dropped,omitempty" msgpack:"dropped,omitempty"`
}

type locator struct {
	fs   *source.FileSet
	opts DocOpts
}

func (l locator) at(sp source.Span) Location {
	f := l.fs.Get(sp.File)
	loc := Location{
		File:  l.opts.Paths.show(f, l.fs.BaseDir()),
		Start: Position{Offset: sp.Start},
		End:   Position{Offset: sp.End},
	}
	if l.opts.Positions && f != nil {
		start, end := f.Resolve(sp)
		loc.Start.Line, loc.Start.Col = start.Line, start.Col
		loc.End.Line, loc.End.Col = end.Line, end.Col
	}
	return loc
}

// BuildDiagnostics converts the bag into its document form without
// encoding it.
func BuildDiagnostics(bag *diag.Bag, fs *source.FileSet, opts DocOpts) DiagnosticsOutput {
	items := bag.Items()
	cut := 0
	if opts.Limit > 0 && len(items) > opts.Limit {
		cut = len(items) - opts.Limit
		items = items[:opts.Limit]
	}
	loc := locator{fs: fs, opts: opts}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticOutput, 0, len(items)),
		Dropped:     bag.Dropped() + cut,
	}
	for _, d := range items {
		entry := DiagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Label:    d.Label,
			Location: loc.at(d.Primary),
		}
		for _, n := range d.Notes {
			entry.Notes = append(entry.Notes, NoteOutput{Message: n.Msg, Location: loc.at(n.Span)})
		}
		if d.Severity == diag.SevError {
			out.Errors++
		}
		out.Diagnostics = append(out.Diagnostics, entry)
	}
	return out
}
