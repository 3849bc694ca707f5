package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// StdinName is the display name of input read from standard input.
const StdinName = "stdin"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileSet owns every input of one tally run. EvaluateFiles loads files from
// several goroutines, so all methods are safe for concurrent use.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	baseDir string // рабочая директория на момент создания
}

// NewFileSet creates an empty FileSet rooted at the working directory.
func NewFileSet() *FileSet {
	wd, _ := os.Getwd()
	return &FileSet{baseDir: wd}
}

// BaseDir is the directory relative paths in diagnostics are shown from.
func (fileSet *FileSet) BaseDir() string { return fileSet.baseDir }

// Add stores content under path and returns its new FileID. Adding the same
// path twice yields two files. Content is not validated; Load and ReadAll do
// that for untrusted input.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	id, err := fileSet.add(path, content, flags)
	if err != nil {
		panic(err)
	}
	return id
}

// AddVirtual adds an in-memory input (stdin, tests).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Load reads a calculator file from disk.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	return fileSet.addChecked(filepath.ToSlash(filepath.Clean(path)), content, 0)
}

// ReadAll drains r (normally stdin) into a virtual file named name. The whole
// input is buffered before lexing starts.
func (fileSet *FileSet) ReadAll(name string, r io.Reader) (FileID, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, &LoadError{Path: name, Err: err}
	}
	return fileSet.addChecked(name, content, FileVirtual)
}

// addChecked drops a leading BOM and rejects invalid UTF-8 before the input
// gets an ID, so disk files and stdin are treated alike.
func (fileSet *FileSet) addChecked(path string, content []byte, flags FileFlags) (FileID, error) {
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if err := validateUTF8(path, content); err != nil {
		return 0, err
	}
	return fileSet.add(path, content, flags)
}

func (fileSet *FileSet) add(path string, content []byte, flags FileFlags) (FileID, error) {
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		return 0, fmt.Errorf("too many files: %w", err)
	}
	f, err := newFile(FileID(n), path, content, flags)
	if err != nil {
		return 0, err
	}
	fileSet.files = append(fileSet.files, f)
	return f.ID, nil
}

// Get returns the file for id, or nil when the id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return fileSet.files[id]
}

// Len returns the number of inputs in the set.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Resolve converts span into positions inside the file it points at.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Resolve(span)
}
