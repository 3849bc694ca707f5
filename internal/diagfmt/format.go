package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"tally/internal/diag"
	"tally/internal/source"
)

// Format selects how results and diagnostics are serialised.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatYAML
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "pretty"
	}
}

// ParseFormat maps a --format value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty", "text":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return FormatPretty, fmt.Errorf("unknown format %q (want pretty|json|yaml|msgpack)", s)
	}
}

// encode writes doc in one of the structured formats.
func encode(w io.Writer, format Format, doc any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("format %s is not structured", format)
	}
}

// Diagnostics writes the bag in the requested format. Pretty output uses
// popts, structured formats use dopts.
func Diagnostics(w io.Writer, format Format, bag *diag.Bag, fs *source.FileSet, popts PrettyOpts, dopts DocOpts) error {
	if format == FormatPretty {
		return Pretty(w, bag, fs, popts)
	}
	return encode(w, format, BuildDiagnostics(bag, fs, dopts))
}
