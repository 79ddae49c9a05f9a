// Package types defines the core data structures of the reasoner: the term
// algebra, truth/evidence representations, evidence stamps, and the sentence
// envelope that ties them together.
//
// Terms are an immutable recursive sum type. Concrete term kinds implement
// the Term interface; construction helpers canonicalize set/conjunction
// children so that structural equality never has to account for ordering.
package types

import (
	"sort"
	"strings"
)

// TermKind identifies which concrete variant a Term is.
type TermKind int

const (
	KindAtom TermKind = iota
	KindVar
	KindStatement
	KindSeq
	KindConj
	KindSetExt
	KindSetInt
	KindProduct
	KindIntInt
)

// VarKind distinguishes the three Narsese variable flavors.
type VarKind int

const (
	VarIndependent VarKind = iota // $
	VarDependent                  // #
	VarQuery                      // ?
)

func (k VarKind) sigil() string {
	switch k {
	case VarIndependent:
		return "$"
	case VarDependent:
		return "#"
	case VarQuery:
		return "?"
	default:
		return "?"
	}
}

// Copula identifies the binary relation connecting a Statement's subject
// and predicate.
type Copula int

const (
	Inheritance Copula = iota // -->
	Similarity                // <->
	Implication               // ==>
	Equivalence               // <=>
	PredImpl                  // =/>
)

func (c Copula) String() string {
	switch c {
	case Inheritance:
		return "-->"
	case Similarity:
		return "<->"
	case Implication:
		return "==>"
	case Equivalence:
		return "<=>"
	case PredImpl:
		return "=/>"
	default:
		return "?COP?"
	}
}

// Term is the recursive term language: atoms, variables, statements, and
// the six structural constructors (sequence, conjunction, extensional and
// intensional sets, product, intensional intersection).
type Term interface {
	Kind() TermKind
	// Children returns the term's immediate substructure in canonical
	// order, or nil for atoms and variables.
	Children() []Term
	// Key returns a canonical string uniquely identifying this term's
	// structure; used as a map/graph-vertex key and for structural
	// equality short-circuiting.
	Key() string
	String() string
}

// Atom is an atomic symbol, e.g. "bird" or "^pick" (operator names begin
// with ^ by convention, see MakeOperationTerm).
type Atom struct {
	Name string
}

func NewAtom(name string) Atom { return Atom{Name: internAtomName(name)} }

func (a Atom) Kind() TermKind   { return KindAtom }
func (a Atom) Children() []Term { return nil }
func (a Atom) Key() string      { return a.Name }
func (a Atom) String() string   { return a.Name }

// Var is a Narsese variable: $independent, #dependent, or ?query.
type Var struct {
	VKind VarKind
	Name  string
}

func NewVar(kind VarKind, name string) Var {
	return Var{VKind: kind, Name: internVarName(name)}
}

func (v Var) Kind() TermKind   { return KindVar }
func (v Var) Children() []Term { return nil }
func (v Var) Key() string      { return v.VKind.sigil() + v.Name }
func (v Var) String() string   { return v.VKind.sigil() + v.Name }

// Statement connects a subject and predicate with a copula:
// <subject COP predicate>.
type Statement struct {
	Copula    Copula
	Subject   Term
	Predicate Term
}

func NewStatement(copula Copula, subject, predicate Term) Statement {
	return Statement{Copula: copula, Subject: subject, Predicate: predicate}
}

func (s Statement) Kind() TermKind   { return KindStatement }
func (s Statement) Children() []Term { return []Term{s.Subject, s.Predicate} }
func (s Statement) Key() string {
	return "<" + s.Subject.Key() + " " + s.Copula.String() + " " + s.Predicate.Key() + ">"
}
func (s Statement) String() string { return s.Key() }

// childSet is the shared representation for the six variadic-child
// constructors; Kind and the bracket pair are supplied by the wrapping type.
type childSet struct {
	children []Term
}

func (c childSet) Children() []Term { return c.children }

func joinKeys(children []Term) string {
	parts := make([]string, len(children))
	for i, t := range children {
		parts[i] = t.Key()
	}
	return strings.Join(parts, " ")
}

// Seq is an ordered temporal sequence: ( a &/ b &/ ... ).
type Seq struct{ childSet }

func NewSeq(children ...Term) Seq { return Seq{childSet{children: append([]Term(nil), children...)}} }

func (s Seq) Kind() TermKind { return KindSeq }
func (s Seq) Key() string    { return "(" + joinKeys(s.children) + " &/)" }
func (s Seq) String() string { return s.Key() }

// Conj is an unordered conjunction: ( a && b && ... ). Children are
// canonicalized to a stable total order (by Key) so structural equality
// does not depend on construction order.
type Conj struct{ childSet }

func NewConj(children ...Term) Conj {
	cs := append([]Term(nil), children...)
	sortTerms(cs)
	return Conj{childSet{children: cs}}
}

func (c Conj) Kind() TermKind { return KindConj }
func (c Conj) Key() string    { return "(" + joinKeys(c.children) + " &&)" }
func (c Conj) String() string { return c.Key() }

// SetExt is an extensional set: { a b c }. Canonicalized sorted & deduped.
type SetExt struct{ childSet }

func NewSetExt(children ...Term) SetExt {
	return SetExt{childSet{children: sortDedupTerms(children)}}
}

func (s SetExt) Kind() TermKind { return KindSetExt }
func (s SetExt) Key() string    { return "{" + joinKeys(s.children) + "}" }
func (s SetExt) String() string { return s.Key() }

// SetInt is an intensional set: [ a b c ]. Canonicalized sorted & deduped.
type SetInt struct{ childSet }

func NewSetInt(children ...Term) SetInt {
	return SetInt{childSet{children: sortDedupTerms(children)}}
}

func (s SetInt) Kind() TermKind { return KindSetInt }
func (s SetInt) Key() string    { return "[" + joinKeys(s.children) + "]" }
func (s SetInt) String() string { return s.Key() }

// Product is an ordered tuple: ( a * b * ... ).
type Product struct{ childSet }

func NewProduct(children ...Term) Product {
	return Product{childSet{children: append([]Term(nil), children...)}}
}

func (p Product) Kind() TermKind { return KindProduct }
func (p Product) Key() string    { return "(" + joinKeys(p.children) + " *)" }
func (p Product) String() string { return p.Key() }

// IntInt is an intensional intersection: ( a | b ). Canonicalized sorted &
// deduped, like the set constructors.
type IntInt struct{ childSet }

func NewIntInt(children ...Term) IntInt {
	return IntInt{childSet{children: sortDedupTerms(children)}}
}

func (i IntInt) Kind() TermKind { return KindIntInt }
func (i IntInt) Key() string    { return "(" + joinKeys(i.children) + " |)" }
func (i IntInt) String() string { return i.Key() }

func sortTerms(ts []Term) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Key() < ts[j].Key() })
}

// sortDedupTerms returns a sorted copy of children with structural
// duplicates removed, per the set-canonicalization invariant of §3.1.
func sortDedupTerms(children []Term) []Term {
	cs := append([]Term(nil), children...)
	sortTerms(cs)
	out := cs[:0]
	var lastKey string
	for i, t := range cs {
		if i == 0 || t.Key() != lastKey {
			out = append(out, t)
			lastKey = t.Key()
		}
	}
	return out
}

// Equals reports deep structural equality between two terms.
func Equals(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// Complexity computes complexity(t): 1 for atoms/variables, otherwise the
// sum of children's complexities, with statements adding +1 over their
// subject+predicate complexity.
func Complexity(t Term) int {
	switch v := t.(type) {
	case Atom, Var:
		return 1
	case Statement:
		return 1 + Complexity(v.Subject) + Complexity(v.Predicate)
	default:
		sum := 0
		for _, c := range t.Children() {
			sum += Complexity(c)
		}
		if sum == 0 {
			return 1
		}
		return sum
	}
}

// Subterms returns t and all its descendants in pre-order, including t
// itself (so Subterms(t) always contains t, per the §8 invariant).
func Subterms(t Term) []Term {
	out := []Term{t}
	for _, c := range t.Children() {
		out = append(out, Subterms(c)...)
	}
	return out
}

// IsVar reports whether t is a variable.
func IsVar(t Term) bool {
	_, ok := t.(Var)
	return ok
}
