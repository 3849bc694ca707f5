package diag

import "tally/internal/source"

// Reporter — минимальный контракт получения диагностик от фаз.
// Единственная реализация: BagReporter (кладёт в Bag).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// Emit forwards a ready diagnostic to r. A nil Reporter is allowed.
func Emit(r Reporter, d Diagnostic) {
	if r == nil {
		return
	}
	if lr, ok := r.(labelReporter); ok {
		lr.ReportDiagnostic(d)
		return
	}
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
}

// labelReporter is implemented by reporters that keep the whole record,
// including the label.
type labelReporter interface {
	ReportDiagnostic(d Diagnostic)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	r.ReportDiagnostic(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// ReportDiagnostic stores d as is.
func (r BagReporter) ReportDiagnostic(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}
