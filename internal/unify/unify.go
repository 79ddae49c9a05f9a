// Package unify implements two-sided structural unification over the term
// algebra in internal/types: matching two terms while solving for variable
// bindings, and applying a solved substitution back onto a term.
//
// Only a non-variable may bind a variable; matching one variable against
// another always fails (§3.8), since neither side can unambiguously ground
// the other.
package unify

import "nars/internal/types"

// Subst maps a bound variable (identified by its canonical Key) to the
// term it stands for.
type Subst map[string]types.Term

// Unify attempts to unify a and b under the bindings already present in
// subst, returning the extended substitution on success. subst is never
// mutated in place: each new binding goes into a fresh copy, and when no
// binding is added subst itself is returned.
func Unify(a, b types.Term, subst Subst) (Subst, bool) {
	a = Substitute(a, subst)
	b = Substitute(b, subst)

	av, aIsVar := a.(types.Var)
	bv, bIsVar := b.(types.Var)

	switch {
	case aIsVar && bIsVar:
		// Variable-to-variable unification is never attempted: neither
		// side has a ground value to offer the other.
		return subst, false
	case aIsVar:
		return bindVar(av, b, subst)
	case bIsVar:
		return bindVar(bv, a, subst)
	}

	if a.Kind() != b.Kind() {
		return subst, false
	}

	switch at := a.(type) {
	case types.Atom:
		bt := b.(types.Atom)
		return subst, at.Name == bt.Name
	case types.Statement:
		bt := b.(types.Statement)
		if at.Copula != bt.Copula {
			return subst, false
		}
		next, ok := Unify(at.Subject, bt.Subject, subst)
		if !ok {
			return subst, false
		}
		return Unify(at.Predicate, bt.Predicate, next)
	default:
		ac, bc := a.Children(), b.Children()
		if len(ac) != len(bc) {
			return subst, false
		}
		next := subst
		for i := range ac {
			var ok bool
			next, ok = Unify(ac[i], bc[i], next)
			if !ok {
				return subst, false
			}
		}
		return next, true
	}
}

// bindVar binds v to t, first resolving a pre-existing binding for v (so
// repeated occurrences of the same variable are forced to agree) and
// rejecting a binding that would make v occur within its own value.
func bindVar(v types.Var, t types.Term, subst Subst) (Subst, bool) {
	if existing, ok := subst[v.Key()]; ok {
		return Unify(existing, t, subst)
	}
	if occurs(v, t) {
		return subst, false
	}
	next := make(Subst, len(subst)+1)
	for k, val := range subst {
		next[k] = val
	}
	next[v.Key()] = t
	return next, true
}

func occurs(v types.Var, t types.Term) bool {
	if other, ok := t.(types.Var); ok {
		return other.Key() == v.Key()
	}
	for _, c := range t.Children() {
		if occurs(v, c) {
			return true
		}
	}
	return false
}

// Substitute applies subst to t, replacing bound variables with their
// values (recursively, so a variable bound to a term containing further
// bound variables is fully resolved) and rebuilding compound terms through
// their canonicalizing constructors.
func Substitute(t types.Term, subst Subst) types.Term {
	if len(subst) == 0 {
		return t
	}
	switch v := t.(type) {
	case types.Var:
		if bound, ok := subst[v.Key()]; ok {
			return Substitute(bound, subst)
		}
		return t
	case types.Atom:
		return t
	case types.Statement:
		return types.NewStatement(v.Copula, Substitute(v.Subject, subst), Substitute(v.Predicate, subst))
	case types.Seq:
		return types.NewSeq(substChildren(v.Children(), subst)...)
	case types.Conj:
		return types.NewConj(substChildren(v.Children(), subst)...)
	case types.SetExt:
		return types.NewSetExt(substChildren(v.Children(), subst)...)
	case types.SetInt:
		return types.NewSetInt(substChildren(v.Children(), subst)...)
	case types.Product:
		return types.NewProduct(substChildren(v.Children(), subst)...)
	case types.IntInt:
		return types.NewIntInt(substChildren(v.Children(), subst)...)
	default:
		return t
	}
}

func substChildren(children []types.Term, subst Subst) []types.Term {
	out := make([]types.Term, len(children))
	for i, c := range children {
		out[i] = Substitute(c, subst)
	}
	return out
}
