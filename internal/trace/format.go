package trace

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // по расширению файла трейса
	FormatText                 // для чтения глазами
	FormatNDJSON               // одна JSON-запись на строку
)

// ParseFormat accepts auto, text, ndjson or json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("unknown trace format %q (want auto|text|ndjson)", s)
}

// resolve picks NDJSON for .ndjson and .jsonl paths when f is auto.
func (f Format) resolve(path string) Format {
	if f != FormatAuto {
		return f
	}
	switch filepath.Ext(path) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	}
	return FormatText
}

func appendEvent(dst []byte, ev *Event, f Format, start time.Time) []byte {
	if f == FormatNDJSON {
		return appendJSON(dst, ev)
	}
	return appendText(dst, ev, start)
}

type jsonEvent struct {
	Time   string            `json:"time"`
	Seq    uint64            `json:"seq"`
	RunID  string            `json:"run_id,omitempty"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	Span   uint64            `json:"span,omitempty"`
	Parent uint64            `json:"parent,omitempty"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

func appendJSON(dst []byte, ev *Event) []byte {
	j := jsonEvent{
		Time:   ev.Time.Format(time.RFC3339Nano),
		Seq:    ev.Seq,
		RunID:  ev.RunID,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.Span,
		Parent: ev.Parent,
		Name:   ev.Name,
		Detail: ev.Detail,
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Appendf(dst, "{\"seq\":%d,\"error\":%q}\n", ev.Seq, err.Error())
	}
	return append(append(dst, data...), '\n')
}

var kindMarks = [...]byte{KindBegin: '+', KindEnd: '-', KindPoint: '.', KindBeat: '~'}

// appendText writes one line:
//
//	0.412ms stage     + eval
//	0.530ms expr        . eval 81 + 2 = I32(83) n=1 at=1:1
//	0.601ms stage     - eval items=1 ms=0.189
func appendText(dst []byte, ev *Event, start time.Time) []byte {
	elapsed := max(float64(ev.Time.Sub(start))/float64(time.Millisecond), 0)
	dst = fmt.Appendf(dst, "%9.3fms %-5s ", elapsed, ev.Scope)
	if ev.Scope > ScopeRun && ev.Scope < ScopeError {
		dst = append(dst, strings.Repeat("  ", int(ev.Scope-ScopeRun))...)
	}
	mark := byte('?')
	if int(ev.Kind) < len(kindMarks) && kindMarks[ev.Kind] != 0 {
		mark = kindMarks[ev.Kind]
	}
	dst = append(dst, mark, ' ')
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(append(dst, ' '), ev.Detail...)
	}
	for _, a := range ev.Attrs {
		dst = append(append(append(append(dst, ' '), a.Key...), '='), a.Value...)
	}
	return append(dst, '\n')
}
