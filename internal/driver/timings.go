package driver

import (
	"encoding/json"
	"fmt"

	"tally/internal/diag"
	"tally/internal/observ"
	"tally/internal/source"
)

type timingPayload struct {
	Stage   string               `json:"stage"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Stages  []observ.StageReport `json:"stages"`
}

// appendTimingDiagnostic adds OBS6001 with the JSON report as its note.
// It is info, so the Bag limit never drops it.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("%s %s: %.2f ms", payload.Stage, payload.Path, payload.TotalMS)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).WithNote(source.Span{}, string(data)))
}
