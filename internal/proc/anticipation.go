package proc

import "nars/internal/types"

// Anticipation is a pending prediction: evidenceRef is the (shared) belief
// sentence the prediction discounts if it fails to pan out, predicted is
// the term expected to occur, and deadline is the tick by which it must.
type Anticipation struct {
	EvidenceRef *types.Sentence
	Predicted   types.Term
	Deadline    int64
}

// Anticipations is the reasoner-thread-exclusive set of in-flight
// predictions (§3.6); no internal locking, per §3.7.
type Anticipations struct {
	items []Anticipation
}

// NewAnticipations creates an empty anticipation set.
func NewAnticipations() *Anticipations {
	return &Anticipations{}
}

// Push adds a new anticipation.
func (a *Anticipations) Push(an Anticipation) {
	a.items = append(a.items, an)
}

// Len reports how many anticipations are currently in flight.
func (a *Anticipations) Len() int {
	return len(a.items)
}

// ConfirmPositive removes every anticipation whose predicted term equals
// an event observed in recent, without touching evidence counts — a
// positive confirmation costs nothing (§4.6.A).
func (a *Anticipations) ConfirmPositive(recent []types.Term) []Anticipation {
	if len(a.items) == 0 {
		return nil
	}
	var confirmed []Anticipation
	kept := a.items[:0]
	for _, an := range a.items {
		matched := false
		for _, event := range recent {
			if types.Equals(an.Predicted, event) {
				matched = true
				break
			}
		}
		if matched {
			confirmed = append(confirmed, an)
		} else {
			kept = append(kept, an)
		}
	}
	a.items = kept
	return confirmed
}

// ConfirmNegative drops every anticipation whose deadline has passed,
// incrementing its evidence's Count.Total (but not Pos) on the way out —
// a missed prediction lowers the belief's frequency (Pos/Total) without
// crediting failure as positive evidence (§4.6.A).
func (a *Anticipations) ConfirmNegative(now int64) []Anticipation {
	if len(a.items) == 0 {
		return nil
	}
	var failed []Anticipation
	kept := a.items[:0]
	for _, an := range a.items {
		if now >= an.Deadline {
			an.EvidenceRef.IncrementCount(0, 1)
			failed = append(failed, an)
			continue
		}
		kept = append(kept, an)
	}
	a.items = kept
	return failed
}
