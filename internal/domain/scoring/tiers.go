package scoring

import (
	"errors"
	"fmt"
)

// Band is one tier of a tier table: scores >= Min fall into Label unless a
// band with a higher Min matches first.
type Band struct {
	Label string  `koanf:"label" json:"label"`
	Min   float64 `koanf:"min" json:"min"`
}

// TierTable is an ordered list of bands, highest Min first, partitioning
// [0,100].
type TierTable []Band

// Lookup returns the label of the band that contains score. Scores below
// zero land in the lowest band.
func (t TierTable) Lookup(score float64) string {
	for _, b := range t {
		if score >= b.Min {
			return b.Label
		}
	}
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1].Label
}

// Has reports whether label names a band of the table.
func (t TierTable) Has(label string) bool {
	for _, b := range t {
		if b.Label == label {
			return true
		}
	}
	return false
}

// Labels returns the band labels in table order.
func (t TierTable) Labels() []string {
	out := make([]string, len(t))
	for i, b := range t {
		out[i] = b.Label
	}
	return out
}

// Validate checks that the table is a total, non-overlapping partition of
// [0,100].
func (t TierTable) Validate() error {
	if len(t) == 0 {
		return errors.New("tier table is empty")
	}
	seen := make(map[string]struct{}, len(t))
	for i, b := range t {
		if b.Label == "" {
			return fmt.Errorf("band %d has no label", i)
		}
		if _, dup := seen[b.Label]; dup {
			return fmt.Errorf("duplicate tier label %q", b.Label)
		}
		seen[b.Label] = struct{}{}
		if b.Min < 0 || b.Min > maxScore {
			return fmt.Errorf("tier %q threshold %v outside [0,100]", b.Label, b.Min)
		}
		if i > 0 && b.Min >= t[i-1].Min {
			return fmt.Errorf("tier %q threshold %v must be below %v", b.Label, b.Min, t[i-1].Min)
		}
	}
	if last := t[len(t)-1]; last.Min != 0 {
		return fmt.Errorf("lowest tier %q must start at 0, got %v", last.Label, last.Min)
	}
	return nil
}
