// Package concept implements concept-addressed memory: a mapping from term
// to Concept, each owning a bounded, confidence-ordered belief table, plus
// a non-authoritative subterm adjacency graph used to find which concepts
// share structure with a given term.
package concept

import (
	"github.com/dominikbraun/graph"

	"nars/internal/types"
)

// vertexHash identifies a subterm-index vertex by its term's canonical key.
func vertexHash(key string) string { return key }

// SubtermIndex is a directed graph from a term's canonical key to the keys
// of each of its immediate subterms, rebuildable from the concept table at
// any time (it is a cache, never the source of truth for what concepts
// exist).
type SubtermIndex struct {
	g graph.Graph[string, string]
}

// NewSubtermIndex creates an empty subterm index.
func NewSubtermIndex() *SubtermIndex {
	return &SubtermIndex{g: graph.New(vertexHash, graph.Directed())}
}

// Record adds t and all of its subterms to the index, with an edge from t's
// key to each immediate child's key. Safe to call repeatedly for the same
// term: AddVertex/AddEdge on an already-present key/edge is a no-op error
// that Record swallows.
func (idx *SubtermIndex) Record(t types.Term) {
	key := t.Key()
	_ = idx.g.AddVertex(key)
	for _, child := range t.Children() {
		idx.Record(child)
		_ = idx.g.AddVertex(child.Key())
		_ = idx.g.AddEdge(key, child.Key())
	}
}

// SubtermKeysOf returns the canonical keys of t's immediate and transitive
// subterms (including t itself), independent of whether they have been
// Record-ed into the graph. This is the path concept.Store actually uses;
// the graph exists for secondary structural queries (e.g. "what else
// mentions X").
func SubtermKeysOf(t types.Term) []string {
	subs := types.Subterms(t)
	keys := make([]string, len(subs))
	for i, s := range subs {
		keys[i] = s.Key()
	}
	return keys
}

// Neighbors returns the keys of terms directly recorded as subterms of the
// term with the given key, or nil if the key is not present.
func (idx *SubtermIndex) Neighbors(key string) []string {
	adj, err := idx.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	edges, ok := adj[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(edges))
	for target := range edges {
		out = append(out, target)
	}
	return out
}

// Size reports the number of distinct term keys recorded in the index.
func (idx *SubtermIndex) Size() int {
	order, err := idx.g.Order()
	if err != nil {
		return 0
	}
	return order
}
