// Package rules implements the eight syllogistic/variable-elimination
// inference rules of spec.md §4.3: seven binary pair-rules and the unary
// conversion rule (Convert). Each pair-rule is tried in
// both premise orderings; premise pairs whose evidence stamps overlap are
// discarded before any rule runs (no conclusions from double-counted
// evidence).
package rules

import (
	"nars/internal/truth"
	"nars/internal/types"
	"nars/internal/unify"
)

// Conclusion is a candidate belief derived from two premises (or, for
// conversion, one): the caller decides whether/how to insert it.
type Conclusion struct {
	Term  types.Term
	Punct types.Punctuation
	TV    types.TV
	Stamp types.Stamp
}

// pairRule is a single binary inference rule. It receives premises in one
// fixed order; the driver below tries both orderings.
type pairRule func(a, b *types.Sentence) (Conclusion, bool)

// binaryRules lists the seven rules that require two non-overlapping
// premises (rules 1–7 of spec.md §4.3). Conversion (rule 8) is unary and
// applied separately by Convert.
var binaryRules = []pairRule{
	deductionOverInheritance,
	deductionOverImplication,
	setUnionOnPredicate,
	setUnionOnSubject,
	conjunctionElimination,
	detachment,
	questionGuidedAbduction,
}

// Apply tries every binary rule against (a, b) and (b, a), skipping the
// pair entirely if their stamps overlap, and returns every conclusion
// produced. It does not deduplicate or insert conclusions; that is the
// declarative cycle's job.
func Apply(a, b *types.Sentence) []Conclusion {
	if a.Stamp.Overlaps(b.Stamp) {
		return nil
	}
	var out []Conclusion
	for _, r := range binaryRules {
		if c, ok := r(a, b); ok {
			out = append(out, c)
		}
		if c, ok := r(b, a); ok {
			out = append(out, c)
		}
	}
	return out
}

func mergedStamp(a, b *types.Sentence) types.Stamp {
	return types.MergeStamps(a.Stamp, b.Stamp, types.DefaultStampCap)
}

func asStatement(s *types.Sentence, copula types.Copula) (types.Statement, bool) {
	stmt, ok := s.Term.(types.Statement)
	if !ok || stmt.Copula != copula {
		return types.Statement{}, false
	}
	return stmt, true
}

// deductionOverInheritance: a-->x, x-->b ⊢ a-->b.
func deductionOverInheritance(a, b *types.Sentence) (Conclusion, bool) {
	if a.Punct != types.Judgment || b.Punct != types.Judgment {
		return Conclusion{}, false
	}
	sa, ok := asStatement(a, types.Inheritance)
	if !ok {
		return Conclusion{}, false
	}
	sb, ok := asStatement(b, types.Inheritance)
	if !ok {
		return Conclusion{}, false
	}
	if !types.Equals(sa.Predicate, sb.Subject) {
		return Conclusion{}, false
	}
	concl := types.NewStatement(types.Inheritance, sa.Subject, sb.Predicate)
	return Conclusion{
		Term:  concl,
		Punct: types.Judgment,
		TV:    truth.Deduce(a.TV(), b.TV()),
		Stamp: mergedStamp(a, b),
	}, true
}

// deductionOverImplication: a==>x, x==>b ⊢ a==>b.
func deductionOverImplication(a, b *types.Sentence) (Conclusion, bool) {
	if a.Punct != types.Judgment || b.Punct != types.Judgment {
		return Conclusion{}, false
	}
	sa, ok := asStatement(a, types.Implication)
	if !ok {
		return Conclusion{}, false
	}
	sb, ok := asStatement(b, types.Implication)
	if !ok {
		return Conclusion{}, false
	}
	if !types.Equals(sa.Predicate, sb.Subject) {
		return Conclusion{}, false
	}
	concl := types.NewStatement(types.Implication, sa.Subject, sb.Predicate)
	return Conclusion{
		Term:  concl,
		Punct: types.Judgment,
		TV:    truth.Deduce(a.TV(), b.TV()),
		Stamp: mergedStamp(a, b),
	}, true
}

// setUnionOnPredicate: x-->[a], x-->[b] ⊢ x-->[a,b] when subjects match.
func setUnionOnPredicate(a, b *types.Sentence) (Conclusion, bool) {
	if a.Punct != types.Judgment || b.Punct != types.Judgment {
		return Conclusion{}, false
	}
	sa, ok := asStatement(a, types.Inheritance)
	if !ok {
		return Conclusion{}, false
	}
	sb, ok := asStatement(b, types.Inheritance)
	if !ok {
		return Conclusion{}, false
	}
	if !types.Equals(sa.Subject, sb.Subject) {
		return Conclusion{}, false
	}
	pa, ok := sa.Predicate.(types.SetInt)
	if !ok {
		return Conclusion{}, false
	}
	pb, ok := sb.Predicate.(types.SetInt)
	if !ok {
		return Conclusion{}, false
	}
	union := types.NewSetInt(append(append([]types.Term{}, pa.Children()...), pb.Children()...)...)
	concl := types.NewStatement(types.Inheritance, sa.Subject, union)
	return Conclusion{
		Term:  concl,
		Punct: types.Judgment,
		TV:    truth.Revise(a.TV(), b.TV()),
		Stamp: mergedStamp(a, b),
	}, true
}

// setUnionOnSubject: {a}-->x, {b}-->x ⊢ {a,b}-->x when predicates match.
func setUnionOnSubject(a, b *types.Sentence) (Conclusion, bool) {
	if a.Punct != types.Judgment || b.Punct != types.Judgment {
		return Conclusion{}, false
	}
	sa, ok := asStatement(a, types.Inheritance)
	if !ok {
		return Conclusion{}, false
	}
	sb, ok := asStatement(b, types.Inheritance)
	if !ok {
		return Conclusion{}, false
	}
	if !types.Equals(sa.Predicate, sb.Predicate) {
		return Conclusion{}, false
	}
	sea, ok := sa.Subject.(types.SetExt)
	if !ok {
		return Conclusion{}, false
	}
	seb, ok := sb.Subject.(types.SetExt)
	if !ok {
		return Conclusion{}, false
	}
	union := types.NewSetExt(append(append([]types.Term{}, sea.Children()...), seb.Children()...)...)
	concl := types.NewStatement(types.Inheritance, union, sa.Predicate)
	return Conclusion{
		Term:  concl,
		Punct: types.Judgment,
		TV:    truth.Revise(a.TV(), b.TV()),
		Stamp: mergedStamp(a, b),
	}, true
}

// conjunctionElimination: (c1 && c2 && ...)==>r with a premise matching one
// conjunct by unification ⊢ substitute(remaining conjuncts)==>r. Covers the
// two-index binary case named in spec.md §4.3 rule 5 and generalizes to any
// conjunction arity.
func conjunctionElimination(a, b *types.Sentence) (Conclusion, bool) {
	if a.Punct != types.Judgment {
		return Conclusion{}, false
	}
	impl, ok := asStatement(a, types.Implication)
	if !ok {
		return Conclusion{}, false
	}
	conj, ok := impl.Subject.(types.Conj)
	if !ok {
		return Conclusion{}, false
	}
	children := conj.Children()
	for i, candidate := range children {
		subst, ok := unify.Unify(candidate, b.Term, nil)
		if !ok {
			continue
		}
		rest := make([]types.Term, 0, len(children)-1)
		for j, c := range children {
			if j != i {
				rest = append(rest, unify.Substitute(c, subst))
			}
		}
		var remaining types.Term
		if len(rest) == 1 {
			remaining = rest[0]
		} else {
			remaining = types.NewConj(rest...)
		}
		concl := unify.Substitute(types.NewStatement(types.Implication, remaining, impl.Predicate), subst)
		return Conclusion{
			Term:  concl,
			Punct: types.Judgment,
			TV:    truth.Deduce(b.TV(), a.TV()),
			Stamp: mergedStamp(a, b),
		}, true
	}
	return Conclusion{}, false
}

// detachment: a==>x, a' with unify(a,a') ⊢ substitute(x).
func detachment(a, b *types.Sentence) (Conclusion, bool) {
	if a.Punct != types.Judgment || b.Punct != types.Judgment {
		return Conclusion{}, false
	}
	impl, ok := asStatement(a, types.Implication)
	if !ok {
		return Conclusion{}, false
	}
	subst, ok := unify.Unify(impl.Subject, b.Term, nil)
	if !ok {
		return Conclusion{}, false
	}
	concl := unify.Substitute(impl.Predicate, subst)
	return Conclusion{
		Term:  concl,
		Punct: types.Judgment,
		TV:    truth.Deduce(a.TV(), b.TV()),
		Stamp: mergedStamp(a, b),
	}, true
}

// questionGuidedAbduction: a==>x? and judgment x' with unify(x,x') ⊢ ground
// a==>x as an answer candidate.
func questionGuidedAbduction(a, b *types.Sentence) (Conclusion, bool) {
	if a.Punct != types.Question || b.Punct != types.Judgment {
		return Conclusion{}, false
	}
	impl, ok := asStatement(a, types.Implication)
	if !ok {
		return Conclusion{}, false
	}
	subst, ok := unify.Unify(impl.Predicate, b.Term, nil)
	if !ok {
		return Conclusion{}, false
	}
	concl := unify.Substitute(a.Term, subst)
	return Conclusion{
		Term:  concl,
		Punct: types.Judgment,
		TV:    truth.Abduce(b.TV(), types.TV{F: 1, C: 1}),
		Stamp: mergedStamp(a, b),
	}, true
}

// Convert applies rule 8 (a-->b ⊢ b-->a) to a single premise; it is unary
// and so is not subject to the stamp-overlap guard the binary rules use.
func Convert(a *types.Sentence) (Conclusion, bool) {
	if a.Punct != types.Judgment {
		return Conclusion{}, false
	}
	stmt, ok := asStatement(a, types.Inheritance)
	if !ok {
		return Conclusion{}, false
	}
	concl := types.NewStatement(types.Inheritance, stmt.Predicate, stmt.Subject)
	return Conclusion{
		Term:  concl,
		Punct: types.Judgment,
		TV:    truth.Convert(a.TV()),
		Stamp: a.Stamp,
	}, true
}
