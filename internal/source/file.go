package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// File is one calculator input: a file on disk or everything read from stdin.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Flags   FileFlags

	// lineStarts[i] is the offset of the first byte of line i+1; always
	// starts with 0, so an empty file still has one (empty) line.
	lineStarts []uint32
}

func newFile(id FileID, path string, content []byte, flags FileFlags) (*File, error) {
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		return nil, fmt.Errorf("%s: input too large: %w", path, err)
	}
	starts := []uint32{0}
	for i := range size {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &File{ID: id, Path: path, Content: content, Flags: flags, lineStarts: starts}, nil
}

func (f *File) size() uint32 { return uint32(len(f.Content)) } // проверено в newFile

// Position converts a byte offset into a line and column. A newline belongs
// to the line it ends.
func (f *File) Position(off uint32) LineCol {
	off = min(off, f.size())
	line := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > off }) - 1
	return LineCol{Line: uint32(line) + 1, Col: off - f.lineStarts[line] + 1}
}

// Resolve returns the positions of both ends of span.
func (f *File) Resolve(span Span) (start, end LineCol) {
	return f.Position(span.Start), f.Position(span.End)
}

// LineStart returns the offset of the first byte of a 1-based line; lines
// past the end map to the end of the content.
func (f *File) LineStart(line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if int(line) > len(f.lineStarts) {
		return f.size()
	}
	return f.lineStarts[line-1]
}

// GetLine returns the text of a 1-based line without its newline, or ""
// when the line does not exist.
func (f *File) GetLine(line uint32) string {
	if line == 0 || int(line) > len(f.lineStarts) {
		return ""
	}
	start, end := f.lineStarts[line-1], f.size()
	if int(line) < len(f.lineStarts) {
		end = f.lineStarts[line] - 1
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for diagnostics. mode is one of "absolute",
// "relative", "basename" or "auto"; stdin and other virtual inputs always
// keep their name.
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, ok := relativeTo(f.Path, baseDir); ok {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// длинные абсолютные пути съедают рамку сниппета
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// relativeTo makes path relative to baseDir. Paths outside baseDir come
// back absolute.
func relativeTo(path, baseDir string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs), true
	}
	return filepath.ToSlash(rel), true
}
