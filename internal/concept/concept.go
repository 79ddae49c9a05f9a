package concept

import (
	"sort"
	"sync"

	"nars/internal/types"
	"nars/pkg/cache"
)

// DefaultKBeliefs bounds how many sentences a single concept's belief table
// retains, per spec.md §3.5.
const DefaultKBeliefs = 18

// DefaultNConcepts bounds the total number of concepts held in memory, per
// spec.md §3.5.
const DefaultNConcepts = 1000

// Concept owns an ordered belief table for one term, capped at kBeliefs and
// kept sorted by descending confidence. A Concept exclusively owns its
// table (§3.7): callers never hold a Concept's beliefs slice across a call
// that might mutate it.
type Concept struct {
	mu       sync.RWMutex
	term     types.Term
	beliefs  []*types.Sentence
	kBeliefs int
}

func newConcept(term types.Term, kBeliefs int) *Concept {
	if kBeliefs <= 0 {
		kBeliefs = DefaultKBeliefs
	}
	return &Concept{term: term, kBeliefs: kBeliefs}
}

// Term returns the term this concept is addressed by.
func (c *Concept) Term() types.Term {
	return c.term
}

// insert adds sentence to the belief table, re-sorts by descending
// confidence, and trims to kBeliefs.
func (c *Concept) insert(sentence *types.Sentence) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.beliefs = append(c.beliefs, sentence)
	sort.SliceStable(c.beliefs, func(i, j int) bool {
		return c.beliefs[i].TV().C > c.beliefs[j].TV().C
	})
	if len(c.beliefs) > c.kBeliefs {
		c.beliefs = c.beliefs[:c.kBeliefs]
	}
}

// Beliefs returns a snapshot copy of the belief table. The lock is released
// before the caller can observe the slice, per the "release lock before
// deep copy" convention used throughout this codebase's storage layer.
func (c *Concept) Beliefs() []*types.Sentence {
	c.mu.RLock()
	src := c.beliefs
	c.mu.RUnlock()

	out := make([]*types.Sentence, len(src))
	copy(out, src)
	return out
}

// AggregateUtility sums the expectation of every belief in the table; used
// by ConceptMemory.Limit to rank concepts for eviction.
func (c *Concept) AggregateUtility() float64 {
	total := 0.0
	for _, b := range c.Beliefs() {
		total += b.Expectation()
	}
	return total
}

// Memory is concept-addressed memory: a map from term key to Concept, with
// a belief-table snapshot cache layered on top to absorb repeated
// concurrent BeliefsByTerms reads (goal system, procedural reasoner,
// storage workers).
type Memory struct {
	mu          sync.RWMutex
	concepts    map[string]*Concept
	nConcepts   int
	kBeliefs    int
	index       *SubtermIndex
	snapshotTTL *cache.LRU[string, []*types.Sentence]
}

// NewMemory creates an empty concept memory with the given capacity bounds.
// A zero value for either bound falls back to its spec.md default.
func NewMemory(nConcepts, kBeliefs int) *Memory {
	if nConcepts <= 0 {
		nConcepts = DefaultNConcepts
	}
	if kBeliefs <= 0 {
		kBeliefs = DefaultKBeliefs
	}
	return &Memory{
		concepts:    make(map[string]*Concept),
		nConcepts:   nConcepts,
		kBeliefs:    kBeliefs,
		index:       NewSubtermIndex(),
		snapshotTTL: cache.New[string, []*types.Sentence](&cache.Config{MaxEntries: nConcepts}),
	}
}

// Store inserts sentence into the concept for every one of its term's
// subterms (including the term itself), per spec.md §4.4, then evicts down
// to capacity if the store has grown past nConcepts.
func (m *Memory) Store(sentence *types.Sentence) {
	m.index.Record(sentence.Term)

	for _, key := range SubtermKeysOf(sentence.Term) {
		c := m.conceptFor(key, sentence.Term)
		c.insert(sentence)
		m.snapshotTTL.Delete(key)
	}

	m.mu.RLock()
	over := len(m.concepts) > m.nConcepts
	m.mu.RUnlock()
	if over {
		m.Limit(m.nConcepts)
	}
}

func (m *Memory) conceptFor(key string, hint types.Term) *Concept {
	m.mu.RLock()
	c, ok := m.concepts[key]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.concepts[key]; ok {
		return c
	}
	c = newConcept(hint, m.kBeliefs)
	m.concepts[key] = c
	return c
}

// BeliefsByTerms returns the union (duplicates admitted) of beliefs across
// every concept named by terms, per spec.md §4.4.
func (m *Memory) BeliefsByTerms(terms []types.Term) []*types.Sentence {
	var out []*types.Sentence
	for _, t := range terms {
		key := t.Key()
		if cached, ok := m.snapshotTTL.Get(key); ok {
			out = append(out, cached...)
			continue
		}
		m.mu.RLock()
		c, ok := m.concepts[key]
		m.mu.RUnlock()
		if !ok {
			continue
		}
		beliefs := c.Beliefs()
		m.snapshotTTL.Set(key, beliefs)
		out = append(out, beliefs...)
	}
	return out
}

// ConceptFor returns the concept keyed by t, if one has been stored.
func (m *Memory) ConceptFor(t types.Term) (*Concept, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.concepts[t.Key()]
	return c, ok
}

// Limit retains only the top-capacity concepts ranked by aggregate belief
// expectation, evicting the rest, per spec.md §3.5's overflow policy.
func (m *Memory) Limit(capacity int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.concepts) <= capacity {
		return
	}

	type ranked struct {
		key string
		c   *Concept
		u   float64
	}
	all := make([]ranked, 0, len(m.concepts))
	for k, c := range m.concepts {
		all = append(all, ranked{key: k, c: c, u: c.AggregateUtility()})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].u > all[j].u })

	kept := make(map[string]*Concept, capacity)
	for i := 0; i < capacity && i < len(all); i++ {
		kept[all[i].key] = all[i].c
	}
	for i := len(kept); i < len(all); i++ {
		m.snapshotTTL.Delete(all[i].key)
	}
	m.concepts = kept
}

// Size returns the number of concepts currently stored.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.concepts)
}

// Index exposes the subterm adjacency graph for structural queries. No
// other package in this module calls it; Store and BeliefsByTerms address
// concepts by term key directly.
func (m *Memory) Index() *SubtermIndex {
	return m.index
}
