package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tally/internal/diag"
	"tally/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, gutter, label, code *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		gutter: color.New(color.FgHiBlack),
		label:  color.New(color.FgMagenta, color.Bold),
		code:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.gutter, p.label, p.code} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() в порядке поступления.
// Для каждой диагностики печатает заголовок, рамку с контекстом исходника
// и подчёркивание Primary span с подписью.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		var f *source.File
		if fs != nil {
			f = fs.Get(d.Primary.File)
		}
		baseDir := ""
		if fs != nil {
			baseDir = fs.BaseDir()
		}
		if err := prettyOne(w, d, f, baseDir, opts); err != nil {
			return err
		}
	}
	return nil
}

// PrettyError renders a single terminal pipeline error.
func PrettyError(w io.Writer, e *diag.Error, opts PrettyOpts) error {
	if e == nil {
		return nil
	}
	return prettyOne(w, e.Diag, e.File, "", opts)
}

func prettyOne(w io.Writer, d diag.Diagnostic, f *source.File, baseDir string, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var b strings.Builder

	sevColor := pal.severity(d.Severity)
	fmt.Fprintf(&b, "  %s %s %s\n", sevColor.Sprint("×"), sevColor.Sprint(d.Message), pal.code.Sprintf("[%s]", d.Code.ID()))

	if f != nil {
		writeSnippet(&b, pal, d, f, baseDir, opts)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "  %s %s\n", pal.info.Sprint("note:"), n.Msg)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSnippet(b *strings.Builder, pal palette, d diag.Diagnostic, f *source.File, baseDir string, opts PrettyOpts) {
	start, _ := f.Resolve(d.Primary)
	firstLine := start.Line
	if ctx := uint32(opts.Context); firstLine > ctx {
		firstLine -= ctx
	} else {
		firstLine = 1
	}
	width := len(strconv.FormatUint(uint64(start.Line), 10))
	pad := strings.Repeat(" ", width)

	fmt.Fprintf(b, " %s %s\n", pad, pal.gutter.Sprintf("╭─[%s:%d:%d]", opts.Paths.show(f, baseDir), start.Line, start.Col))
	for ln := firstLine; ln <= start.Line; ln++ {
		text := expandTabs(strings.TrimRight(f.GetLine(ln), "\r"))
		fmt.Fprintf(b, " %s %s %s\n", pal.gutter.Sprintf("%*d", width, ln), pal.gutter.Sprint("│"), text)
	}

	col, span := caretColumns(f, d.Primary, start.Line)
	marker := "┬" + strings.Repeat("─", span-1)
	label := d.Label
	if label == "" {
		label = d.Code.Title()
	}
	indent := strings.Repeat(" ", col)
	fmt.Fprintf(b, " %s %s %s%s\n", pad, pal.gutter.Sprint("·"), indent, pal.label.Sprint(marker))
	fmt.Fprintf(b, " %s %s %s%s\n", pad, pal.gutter.Sprint("·"), indent, pal.label.Sprint("╰── "+label))
	fmt.Fprintf(b, " %s %s\n", pad, pal.gutter.Sprint("╰────"))
}

// caretColumns returns the display column of the span start on its line and
// the display width of the part of the span that sits on that line (at least 1).
func caretColumns(f *source.File, sp source.Span, line uint32) (col, width int) {
	lineStart := f.LineStart(line)
	text := f.GetLine(line)
	from := clamp(int(sp.Start)-int(lineStart), 0, len(text))
	to := clamp(int(sp.End)-int(lineStart), from, len(text))

	col = runewidth.StringWidth(expandTabs(text[:from]))
	width = runewidth.StringWidth(expandTabs(text[from:to]))
	return col, max(width, 1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
