package diag

// Severity ranks a diagnostic. Pipeline failures are always SevError;
// SevInfo carries observability records such as timings.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String returns the lower-case name used by every output format.
func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
