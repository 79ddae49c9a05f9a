// Package truth implements the truth-value arithmetic used by the
// inference rules: deduction, revision, conversion, and the decision-
// theoretic expectation function, plus the fixed confidence discount
// abduction applies.
package truth

import "nars/internal/types"

// Deduce computes the deduction truth function: f = f1*f2, c = c1*c2*f1*f2.
func Deduce(a, b types.TV) types.TV {
	f := a.F * b.F
	c := a.C * b.C * a.F * b.F
	return types.TV{F: f, C: c}
}

// Revise merges two independent judgments of the same statement into one,
// strengthening confidence as evidence accumulates. Standard NARS revision:
//
//	w1 = c1/(1-c1), w2 = c2/(1-c2)
//	f  = (w1*f1 + w2*f2) / (w1 + w2)
//	c  = (w1 + w2) / (w1 + w2 + 1)
//
// Certain inputs (c=1) are treated as dominating: Revise returns that side
// untouched rather than dividing by zero.
func Revise(a, b types.TV) types.TV {
	if a.C >= 1 {
		return a
	}
	if b.C >= 1 {
		return b
	}
	w1 := a.C / (1 - a.C)
	w2 := b.C / (1 - b.C)
	f := (w1*a.F + w2*b.F) / (w1 + w2)
	c := (w1 + w2) / (w1 + w2 + 1)
	return types.TV{F: f, C: c}
}

// Convert computes the converse truth function used by rule 8
// (a-->b ⊢ b-->a): the symmetric relation is only as believable as the
// original was confident, discounted by its own frequency as weight of
// evidence for the reverse direction.
func Convert(a types.TV) types.TV {
	f := 1.0
	c := (a.F * a.C) / (a.F*a.C + 1)
	if a.F == 0 {
		c = 0
	}
	return types.TV{F: f, C: c}
}

// abductionDiscount is the fixed confidence penalty applied to
// question-guided abduction (rule 7): an abduced conclusion is always less
// confident than its premises. Unlike Deduce, Abduce does not scale by the
// premises' frequencies, so for high-frequency premises its confidence can
// exceed deduction's (0.729 vs 0.6561 for two {0.9, 0.9} premises).
const abductionDiscount = 0.9

// Abduce computes the truth value of a ground abductive conclusion:
// f is inherited from the matched judgment, c is discounted by both
// premises' confidence and the abduction penalty.
func Abduce(matched, antecedent types.TV) types.TV {
	return types.TV{F: matched.F, C: matched.C * antecedent.C * abductionDiscount}
}

// Eternalize converts an evidence count to a truth value, see
// types.Count.ToTV; exposed here so callers working purely in truth.TV
// terms don't need to reach into types for the conversion.
func Eternalize(cnt types.Count) types.TV {
	return cnt.ToTV()
}
