// Package goal implements the goal-directed subsystem of spec.md §4.7: a
// bounded, priority-ordered list of goal entries, subgoal derivation from
// procedural implications, and the decision-making lookup the procedural
// reasoner uses to pick the best pursuable goal for the current state.
//
// Like the declarative task bag, the goal list is reasoner-thread
// exclusive (§3.7/§5) and carries no internal locking.
package goal

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"nars/internal/concept"
	"nars/internal/truth"
	"nars/internal/types"
	"nars/internal/unify"
)

// DefaultMaxEntries bounds the goal list size.
const DefaultMaxEntries = 200

// DefaultMaxDepth bounds how many subgoal-derivation hops an entry may be
// removed from a root goal before it is rejected.
const DefaultMaxDepth = 8

// Entry is one goal in the system: a goal sentence, a link back to the
// goal it was derived from (if any), the evidence belief that justified
// the derivation, a depth bound, and a cached desirability used for
// priority-list ordering without re-deriving it from the sentence's TV
// every time.
type Entry struct {
	ID               uuid.UUID
	Goal             *types.Sentence
	Parent           *Entry
	EvidenceRef      *types.Sentence
	Depth            int
	DesireExpectation float64
	Satisfied        bool
}

// System is the bounded goal list.
type System struct {
	entries     map[uuid.UUID]*Entry
	maxEntries  int
	maxDepth    int
}

// NewSystem creates an empty goal system with the given capacity bounds. A
// zero value for either bound falls back to its spec.md default.
func NewSystem(maxEntries, maxDepth int) *System {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &System{
		entries:    make(map[uuid.UUID]*Entry),
		maxEntries: maxEntries,
		maxDepth:   maxDepth,
	}
}

// Add inserts a goal entry, rejecting it if depth exceeds maxDepth, then
// trims the list to maxEntries by descending expectation.
func (s *System) Add(goalSentence *types.Sentence, parent *Entry, evidence *types.Sentence, depth int) (*Entry, bool) {
	if depth > s.maxDepth {
		return nil, false
	}
	e := &Entry{
		ID:                uuid.New(),
		Goal:              goalSentence,
		Parent:            parent,
		EvidenceRef:       evidence,
		Depth:             depth,
		DesireExpectation: goalSentence.Expectation(),
	}
	s.entries[e.ID] = e
	s.trim()
	return e, true
}

func (s *System) trim() {
	if len(s.entries) <= s.maxEntries {
		return
	}
	all := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DesireExpectation > all[j].DesireExpectation })
	keep := make(map[uuid.UUID]*Entry, s.maxEntries)
	for i := 0; i < s.maxEntries && i < len(all); i++ {
		keep[all[i].ID] = all[i]
	}
	s.entries = keep
}

// Entries returns every current entry; callers must not mutate the
// returned entries' shared fields concurrently (reasoner-thread exclusive).
func (s *System) Entries() []*Entry {
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// Len reports how many entries the system currently holds.
func (s *System) Len() int {
	return len(s.entries)
}

// proceduralImplication recognizes a belief of shape (s &/ op) =/> g.
func proceduralImplication(t types.Term) (precondition types.Seq, consequence types.Term, ok bool) {
	stmt, isStmt := t.(types.Statement)
	if !isStmt || stmt.Copula != types.PredImpl {
		return types.Seq{}, nil, false
	}
	seq, isSeq := stmt.Subject.(types.Seq)
	if !isSeq {
		return types.Seq{}, nil, false
	}
	return seq, stmt.Predicate, true
}

// SampleAndInference picks a random entry, picks a random belief of shape
// (s &/ op) =/> g whose g unifies with the entry's goal, and derives the
// subgoal substitute(s) with desire ded(entry.desire, belief.TV).
func (s *System) SampleAndInference(concepts *concept.Memory, rng *rand.Rand) (*Entry, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	entry := s.randomEntry(rng)
	if entry == nil {
		return nil, false
	}

	beliefs := concepts.BeliefsByTerms([]types.Term{entry.Goal.Term})
	candidates := make([]*types.Sentence, 0, len(beliefs))
	for _, b := range beliefs {
		if _, _, ok := proceduralImplication(b.Term); ok {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	belief := candidates[rng.Intn(len(candidates))]

	precondition, consequence, _ := proceduralImplication(belief.Term)
	subst, ok := unify.Unify(consequence, entry.Goal.Term, nil)
	if !ok {
		return nil, false
	}

	var precTerm types.Term = precondition
	substituted := unify.Substitute(precTerm, subst)
	subgoalSeq, isSeq := substituted.(types.Seq)
	var subgoalTerm types.Term = substituted
	if isSeq && len(subgoalSeq.Children()) > 0 {
		subgoalTerm = subgoalSeq.Children()[0]
	}

	desire := truth.Deduce(entry.Goal.TV(), belief.TV())
	subgoalSentence := types.NewGoal(subgoalTerm, desire)
	return s.Add(subgoalSentence, entry, belief, entry.Depth+1)
}

func (s *System) randomEntry(rng *rand.Rand) *Entry {
	if len(s.entries) == 0 {
		return nil
	}
	idx := rng.Intn(len(s.entries))
	i := 0
	for _, e := range s.entries {
		if i == idx {
			return e
		}
		i++
	}
	return nil
}

// HighestExpectationByState finds, among entries whose goal is justified
// by a procedural implication whose precondition's first element unifies
// with state, the entry of maximum desire expectation, along with the
// unified precondition term.
func (s *System) HighestExpectationByState(state types.Term, concepts *concept.Memory) (*Entry, types.Term, float64, bool) {
	var best *Entry
	var bestPrecondition types.Term
	bestExp := -1.0

	for _, e := range s.entries {
		if e.Satisfied {
			continue
		}
		beliefs := concepts.BeliefsByTerms([]types.Term{e.Goal.Term})
		for _, b := range beliefs {
			precondition, consequence, ok := proceduralImplication(b.Term)
			if !ok {
				continue
			}
			subst, ok := unify.Unify(consequence, e.Goal.Term, nil)
			if !ok {
				continue
			}
			children := precondition.Children()
			if len(children) == 0 {
				continue
			}
			first := unify.Substitute(children[0], subst)
			if _, ok := unify.Unify(first, state, nil); !ok {
				continue
			}
			if e.DesireExpectation > bestExp {
				bestExp = e.DesireExpectation
				best = e
				bestPrecondition = unify.Substitute(precondition, subst)
			}
		}
	}
	if best == nil {
		return nil, nil, 0, false
	}
	return best, bestPrecondition, bestExp, true
}

// EventOccurred marks every entry whose goal term equals term as satisfied.
func (s *System) EventOccurred(term types.Term) {
	for _, e := range s.entries {
		if types.Equals(e.Goal.Term, term) {
			e.Satisfied = true
		}
	}
}

// LimitMemory drops satisfied entries, then the lowest-expectation entries
// beyond maxEntries. Entry age is not tracked and plays no part in which
// entries are dropped.
func (s *System) LimitMemory() {
	for id, e := range s.entries {
		if e.Satisfied {
			delete(s.entries, id)
		}
	}
	s.trim()
}
