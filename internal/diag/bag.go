package diag

// Bag records the diagnostics of one pipeline run. Errors and warnings
// count against the limit; info records (OBS6001 timings) are always kept,
// so --timings still works with --max-diagnostics=1.
type Bag struct {
	items   []Diagnostic
	limit   int
	counted int
	dropped int
}

// NewBag creates a bag holding at most limit errors and warnings (at least one).
func NewBag(limit int) *Bag {
	return &Bag{limit: max(limit, 1)}
}

// Add stores d and reports whether it was kept.
func (b *Bag) Add(d Diagnostic) bool {
	if d.Severity > SevInfo {
		if b.counted >= b.limit {
			b.dropped++
			return false
		}
		b.counted++
	}
	b.items = append(b.items, d)
	return true
}

// Len returns the number of stored diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Dropped returns how many errors and warnings did not fit under the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the stored diagnostics in report order. Callers must not
// modify the slice.
func (b *Bag) Items() []Diagnostic { return b.items }
