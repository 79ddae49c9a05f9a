package types

import "sync"

// Punctuation marks a sentence's role: judgment, goal, or question.
type Punctuation int

const (
	Judgment Punctuation = iota // .
	Goal                        // !
	Question                    // ?
)

func (p Punctuation) String() string {
	switch p {
	case Judgment:
		return "."
	case Goal:
		return "!"
	case Question:
		return "?"
	default:
		return "."
	}
}

// Sentence is a term wrapped in punctuation with an evidence base and, for
// judgments and goals, either a TV or a Count evidence representation. It
// is immutable after insertion except for its evidence field, which is
// revised in place under a per-sentence lock as new evidence for the same
// belief arrives (§3.3, §3.7).
type Sentence struct {
	Term       Term
	Punct      Punctuation
	Stamp      Stamp
	OccurrTick int64 // -1 for eternal sentences
	DerivDepth int   // inference-chain depth, for diagnostics only
	ExpDt      *int  // exponential-interval index, temporal rules only

	mu      sync.Mutex
	tv      TV
	useCnt  bool
	cnt     Count
}

// NewJudgment builds an eternal judgment sentence with the given truth value.
func NewJudgment(term Term, tv TV) *Sentence {
	return &Sentence{Term: term, Punct: Judgment, Stamp: NewStamp(), OccurrTick: -1, tv: tv}
}

// NewGoal builds an eternal goal sentence with the given desire value.
func NewGoal(term Term, tv TV) *Sentence {
	return &Sentence{Term: term, Punct: Goal, Stamp: NewStamp(), OccurrTick: -1, tv: tv}
}

// NewQuestion builds a question sentence (no truth value).
func NewQuestion(term Term) *Sentence {
	return &Sentence{Term: term, Punct: Question, Stamp: NewStamp(), OccurrTick: -1}
}

// NewCountJudgment builds an eternal judgment carrying Count evidence
// instead of a direct TV — the representation procedural/temporal beliefs
// use so that the storage worker can increment pos/total in place.
func NewCountJudgment(term Term, cnt Count) *Sentence {
	return &Sentence{Term: term, Punct: Judgment, Stamp: NewStamp(), OccurrTick: -1, useCnt: true, cnt: cnt}
}

// NewCandidateRule builds a Count(1,1)-backed judgment for a freshly
// sampled temporal rule, carrying the given evidence base and exponential
// interval index (§4.6.C) — the shape the procedural reasoner's
// perception-sampling step hands to the storage worker.
func NewCandidateRule(term Term, stamp Stamp, expDt int) *Sentence {
	return &Sentence{Term: term, Punct: Judgment, Stamp: stamp, OccurrTick: -1, ExpDt: &expDt, useCnt: true, cnt: Count{Pos: 1, Total: 1}}
}

// TV returns a snapshot of the sentence's current truth value, converting
// from Count evidence if that is the active representation.
func (s *Sentence) TV() TV {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.useCnt {
		return s.cnt.ToTV()
	}
	return s.tv
}

// SetTV replaces the sentence's truth value directly, switching it to the
// TV representation if it was previously Count-backed.
func (s *Sentence) SetTV(tv TV) {
	s.mu.Lock()
	s.useCnt = false
	s.tv = tv
	s.mu.Unlock()
}

// Count returns a snapshot of the sentence's Count evidence; ok is false if
// the sentence is TV-backed.
func (s *Sentence) Count() (Count, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cnt, s.useCnt
}

// MergeStampInPlace unions other into the sentence's evidence base,
// truncated to cap. Guarded by the same lock as the evidence fields so a
// concurrent storage-worker revision cannot race a reader mid-merge.
func (s *Sentence) MergeStampInPlace(other Stamp, cap int) {
	s.mu.Lock()
	s.Stamp = MergeStamps(s.Stamp, other, cap)
	s.mu.Unlock()
}

// IncrementCount adds posDelta/totalDelta to the sentence's Count evidence
// (switching it to the Count representation first if necessary), per the
// storage worker's revision algorithm (§4.6.D).
func (s *Sentence) IncrementCount(posDelta, totalDelta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.useCnt {
		s.cnt = FromTV(s.tv)
		s.useCnt = true
	}
	s.cnt.Pos += posDelta
	s.cnt.Total += totalDelta
}

// Expectation returns the decision-theoretic expectation of the current
// truth value.
func (s *Sentence) Expectation() float64 {
	return s.TV().Expectation()
}

// WithTime returns a shallow copy of s occurring at the given tick, carrying
// the same term, punctuation, stamp and truth value. Used by the input
// facade to anchor an incoming goal event at the current tick.
func (s *Sentence) WithTime(tick int64) *Sentence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Sentence{
		Term:       s.Term,
		Punct:      s.Punct,
		Stamp:      s.Stamp,
		OccurrTick: tick,
		DerivDepth: s.DerivDepth,
		ExpDt:      s.ExpDt,
		useCnt:     s.useCnt,
		tv:         s.tv,
		cnt:        s.cnt,
	}
}

// MakeOperationTerm builds the canonical operator-invocation term
// <{(*arg0 arg1 ...)} --> ^opname>, i.e. the extensional singleton set of a
// product of arguments inheriting in an operator atom (spec.md §3.1, matching
// original_source's encodeOp).
func MakeOperationTerm(opName string, args []Term) Term {
	return NewStatement(Inheritance, NewSetExt(NewProduct(args...)), NewAtom(opName))
}

// DecodeOperation recognizes the operator-invocation convention produced by
// MakeOperationTerm and extracts the operator name and argument list.
func DecodeOperation(t Term) (opName string, args []Term, ok bool) {
	stmt, isStmt := t.(Statement)
	if !isStmt || stmt.Copula != Inheritance {
		return "", nil, false
	}
	set, isSet := stmt.Subject.(SetExt)
	if !isSet || len(set.Children()) != 1 {
		return "", nil, false
	}
	prod, isProd := set.Children()[0].(Product)
	if !isProd {
		return "", nil, false
	}
	atom, isAtom := stmt.Predicate.(Atom)
	if !isAtom {
		return "", nil, false
	}
	return atom.Name, prod.Children(), true
}
