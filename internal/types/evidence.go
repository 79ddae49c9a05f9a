package types

import "sync/atomic"

// TV is an instantaneous truth value: frequency f and confidence c, both in
// [0, 1].
type TV struct {
	F float64
	C float64
}

// Count is amount-of-evidence truth: positive and total evidence counts.
// ToTV converts it to an (f, c) pair with evidential horizon k=1.
type Count struct {
	Pos   float64
	Total float64
}

const evidentialHorizon = 1.0

// ToTV converts evidence counts to a truth value using c = w / (w + k).
func (cnt Count) ToTV() TV {
	if cnt.Total <= 0 {
		return TV{F: 0.5, C: 0}
	}
	return TV{
		F: cnt.Pos / cnt.Total,
		C: cnt.Total / (cnt.Total + evidentialHorizon),
	}
}

// FromTV recovers an evidence count from a truth value, inverting ToTV.
func FromTV(tv TV) Count {
	if tv.C >= 1 {
		return Count{Pos: 1e12 * tv.F, Total: 1e12}
	}
	w := evidentialHorizon * tv.C / (1 - tv.C)
	return Count{Pos: w * tv.F, Total: w}
}

// Expectation computes the decision-theoretic expectation value of a truth
// value: e = c*(f - 0.5) + 0.5.
func (tv TV) Expectation() float64 {
	return tv.C*(tv.F-0.5) + 0.5
}

// stampCounter hands out monotonically increasing evidence-base IDs.
var stampCounter uint64

// NextStampID returns a fresh globally unique evidence-base element.
func NextStampID() uint64 {
	return atomic.AddUint64(&stampCounter, 1)
}

// DefaultStampCap bounds how many evidence-base IDs a Stamp retains after a
// merge; older IDs are dropped first.
const DefaultStampCap = 20

// Stamp is an evidence base: the set of original-belief IDs that
// contributed, directly or through inference, to a sentence. Two premises
// whose stamps overlap may not be combined by an inference rule (the
// revision-vs-derivation guard, §3.4).
type Stamp struct {
	IDs []uint64
}

// NewStamp creates a stamp carrying a single fresh evidence-base element.
func NewStamp() Stamp {
	return Stamp{IDs: []uint64{NextStampID()}}
}

// Overlaps reports whether a and b share any evidence-base element.
func (a Stamp) Overlaps(b Stamp) bool {
	set := make(map[uint64]struct{}, len(a.IDs))
	for _, id := range a.IDs {
		set[id] = struct{}{}
	}
	for _, id := range b.IDs {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

// MergeStamps unions two evidence bases, deduplicating and truncating to
// cap (keeping the newest IDs — evidence from more recent derivations is
// kept in preference to stale evidence when a stamp would otherwise grow
// unbounded).
func MergeStamps(a, b Stamp, cap int) Stamp {
	seen := make(map[uint64]struct{}, len(a.IDs)+len(b.IDs))
	merged := make([]uint64, 0, len(a.IDs)+len(b.IDs))
	for _, id := range append(append([]uint64{}, a.IDs...), b.IDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	if cap > 0 && len(merged) > cap {
		// Keep the newest (largest) IDs: sort descending, truncate.
		for i := 1; i < len(merged); i++ {
			v := merged[i]
			j := i - 1
			for j >= 0 && merged[j] < v {
				merged[j+1] = merged[j]
				j--
			}
			merged[j+1] = v
		}
		merged = merged[:cap]
	}
	return Stamp{IDs: merged}
}
