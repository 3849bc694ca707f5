package diag

import (
	"errors"
	"fmt"

	"tally/internal/source"
)

// Sentinels matched through Error.Unwrap, one per error kind.
var (
	ErrUnexpectedCharacter  = errors.New("unexpected character")
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrInvalidNumber        = errors.New("invalid number")
	ErrArithmeticOverflow   = errors.New("arithmetic overflow")
	ErrInvalidEncoding      = errors.New("invalid encoding")
)

// Error is a terminal pipeline error. It owns one diagnostic and a reference
// to the file (name and full text) the diagnostic's span points into, which
// is everything a renderer needs.
type Error struct {
	Diag  Diagnostic
	File  *source.File
	Cause error // исходная ошибка ввода-вывода, если есть
}

// NewErrorFor builds an *Error from a diagnostic and the file it refers to.
func NewErrorFor(file *source.File, d Diagnostic) *Error {
	return &Error{Diag: d, File: file}
}

func (e *Error) Error() string {
	if e.File == nil {
		return fmt.Sprintf("%s: %s", e.Diag.Code.ID(), e.Diag.Message)
	}
	start, _ := e.File.Resolve(e.Diag.Primary)
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.File.Path, start.Line, start.Col, e.Diag.Code.ID(), e.Diag.Message)
}

// Unwrap exposes the sentinel for the diagnostic code and the cause, if any,
// so callers can use errors.Is with either.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := sentinel(e.Diag.Code); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func sentinel(code Code) error {
	switch code {
	case LexUnexpectedCharacter:
		return ErrUnexpectedCharacter
	case SynUnexpectedToken:
		return ErrUnexpectedToken
	case SynUnexpectedEndOfInput:
		return ErrUnexpectedEndOfInput
	case EvalInvalidNumber:
		return ErrInvalidNumber
	case EvalArithmeticOverflow:
		return ErrArithmeticOverflow
	case IOInvalidEncoding:
		return ErrInvalidEncoding
	default:
		return nil
	}
}

// Span returns the primary span of the diagnostic.
func (e *Error) Span() source.Span { return e.Diag.Primary }

// AsError extracts the *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
