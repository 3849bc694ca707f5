package source

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
)

// ErrInvalidEncoding is matched by every EncodingError.
var ErrInvalidEncoding = errors.New("invalid encoding")

// EncodingError reports input that is not valid UTF-8. It is raised before
// any file enters the FileSet, so it carries a path and offset instead of a Span.
type EncodingError struct {
	Path   string
	Offset int // first invalid byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: invalid encoding: not valid UTF-8 at byte %d", e.Path, e.Offset)
}

func (e *EncodingError) Unwrap() error { return ErrInvalidEncoding }

// LoadError wraps I/O failures while reading a source.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func validateUTF8(path string, content []byte) error {
	dst := make([]byte, len(content))
	_, n, err := encoding.UTF8Validator.Transform(dst, content, true)
	if err != nil {
		return &EncodingError{Path: path, Offset: n}
	}
	return nil
}
