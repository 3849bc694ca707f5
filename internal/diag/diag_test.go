package diag

import (
	"errors"
	"fmt"
	"testing"

	"tally/internal/source"
)

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnexpectedCharacter:  "LEX1001",
		SynUnexpectedToken:      "SYN2001",
		SynUnexpectedEndOfInput: "SYN2002",
		EvalInvalidNumber:       "EVL3001",
		EvalArithmeticOverflow:  "EVL3002",
		IOInvalidEncoding:       "IO4001",
		UnknownCode:             "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown code title mismatch")
	}
}

func TestErrorUnwrapsToSentinel(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("stdin", []byte("3 3")))

	err := error(NewErrorFor(file, NewError(SynUnexpectedToken, source.Span{File: file.ID, Start: 2, End: 3}, "unexpected token")))
	wrapped := fmt.Errorf("parse: %w", err)

	if !errors.Is(wrapped, ErrUnexpectedToken) {
		t.Fatalf("expected ErrUnexpectedToken in chain")
	}
	if errors.Is(wrapped, ErrUnexpectedCharacter) {
		t.Fatalf("unexpected sentinel match")
	}
	de, ok := AsError(wrapped)
	if !ok || de.Span().Start != 2 {
		t.Fatalf("AsError = %v, %v", de, ok)
	}
	if got, want := err.Error(), "stdin:1:3: SYN2001: unexpected token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBagLimitExemptsInfo(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(NewError(SynUnexpectedToken, source.Span{Start: 5, End: 6}, "b")) {
		t.Fatal("first error rejected")
	}
	if bag.Add(NewError(LexUnexpectedCharacter, source.Span{Start: 1, End: 2}, "a")) {
		t.Fatal("limit not enforced")
	}
	if !bag.Add(New(SevInfo, ObsTimings, source.Span{}, "timings")) {
		t.Fatal("info record must bypass the limit")
	}
	if bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("Len = %d, Dropped = %d", bag.Len(), bag.Dropped())
	}
	if bag.Items()[0].Message != "b" || bag.Items()[1].Code != ObsTimings {
		t.Errorf("items out of report order: %v", bag.Items())
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "info", SevWarning: "warning", SevError: "error", Severity(9): "info"} {
		if got := sev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sev, got, want)
		}
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("stdin", []byte("3\n4\n87 'sd"))
	diags := []Diagnostic{
		NewError(LexUnexpectedCharacter, source.Span{File: id, Start: 7, End: 8}, "unexpected character\n'"),
	}
	want := "error LEX1001 stdin:3:4 unexpected character '"
	if got := FormatShort(diags, fs); got != want {
		t.Fatalf("FormatShort = %q, want %q", got, want)
	}
}
