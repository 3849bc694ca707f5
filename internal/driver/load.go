package driver

import (
	"errors"
	"fmt"
	"io"

	"tally/internal/diag"
	"tally/internal/source"
)

// LoadFile reads path into fs. Failures come back as *diag.Error with
// IO4001 (not UTF-8) or IO4002 (read failure).
func LoadFile(fs *source.FileSet, path string) (*source.File, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	return fs.Get(id), nil
}

// LoadReader drains r into fs under name. The whole input is buffered
// before any lexing starts.
func LoadReader(fs *source.FileSet, name string, r io.Reader) (*source.File, error) {
	id, err := fs.ReadAll(name, r)
	if err != nil {
		return nil, loadError(name, err)
	}
	return fs.Get(id), nil
}

func loadError(path string, err error) error {
	var encErr *source.EncodingError
	if errors.As(err, &encErr) {
		d := diag.NewError(diag.IOInvalidEncoding, source.Span{},
			fmt.Sprintf("invalid encoding: %s is not valid UTF-8 (byte %d)", encErr.Path, encErr.Offset))
		return &diag.Error{Diag: d, Cause: err}
	}
	var loadErr *source.LoadError
	if errors.As(err, &loadErr) {
		d := diag.NewError(diag.IOLoadFileError, source.Span{},
			fmt.Sprintf("cannot read %s: %v", loadErr.Path, loadErr.Err))
		return &diag.Error{Diag: d, Cause: loadErr.Err}
	}
	d := diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("cannot read %s: %v", path, err))
	return &diag.Error{Diag: d, Cause: err}
}
