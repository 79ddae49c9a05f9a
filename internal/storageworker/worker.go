// Package storageworker runs the asynchronous revision-vs-insertion
// algorithm the procedural reasoner hands candidate temporal beliefs to
// (spec.md §4.6.D), off the reasoner's main goroutine so perception
// sampling never blocks on concept-memory writes.
package storageworker

import (
	"sync"

	"nars/internal/concept"
	"nars/internal/types"
)

// DefaultChannelDepth is the default bound on a Worker's input channel,
// per spec.md §5's backpressure requirement.
const DefaultChannelDepth = 4

// DefaultWorkerCount is the default number of goroutines draining the
// shared input channel, per spec.md §5 ("two workers is the default").
const DefaultWorkerCount = 2

// Worker consumes candidate temporal-rule sentences from a bounded channel
// shared by count goroutines, each either revising a matching existing
// belief in place or inserting the candidate as a new one. Submitting past
// the channel's depth blocks the caller (mandatory backpressure, never
// silent drop); concept.Memory's own locking makes concurrent revision
// safe across workers.
type Worker struct {
	in        chan *types.Sentence
	concepts  *concept.Memory
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewWorker starts count goroutines (the spec.md default if count <= 0)
// reading from a channel of the given depth (the spec.md default if
// depth <= 0), storing accepted beliefs into concepts.
func NewWorker(concepts *concept.Memory, depth, count int) *Worker {
	if depth <= 0 {
		depth = DefaultChannelDepth
	}
	if count <= 0 {
		count = DefaultWorkerCount
	}
	w := &Worker{
		in:       make(chan *types.Sentence, depth),
		concepts: concepts,
	}
	w.wg.Add(count)
	for i := 0; i < count; i++ {
		go w.run()
	}
	return w
}

// Submit hands a candidate sentence to the worker, blocking if the channel
// is full.
func (w *Worker) Submit(candidate *types.Sentence) {
	w.in <- candidate
}

// Close signals no further candidates will arrive and blocks until the
// worker has drained its channel. Safe to call more than once.
func (w *Worker) Close() {
	w.closeOnce.Do(func() { close(w.in) })
	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()
	for candidate := range w.in {
		w.process(candidate)
	}
}

// process implements §4.6.D: look up beliefs sharing a subterm with the
// candidate, and if one structurally equals it (modulo an equal-or-later
// exponential interval index) with a non-overlapping evidence base, merge
// stamps and increment its Count in place rather than inserting a
// duplicate belief.
func (w *Worker) process(candidate *types.Sentence) {
	beliefs := w.concepts.BeliefsByTerms(types.Subterms(candidate.Term))
	for _, belief := range beliefs {
		if !types.Equals(belief.Term, candidate.Term) {
			continue
		}
		if !expDtCompatible(belief, candidate) {
			continue
		}
		if belief.Stamp.Overlaps(candidate.Stamp) {
			continue
		}
		belief.MergeStampInPlace(candidate.Stamp, types.DefaultStampCap)
		belief.IncrementCount(1, 1)
		return
	}
	w.concepts.Store(candidate)
}

// expDtCompatible reports whether belief is an acceptable revision target
// for candidate: either neither carries an interval index, or belief's
// index is at least as wide as candidate's.
func expDtCompatible(belief, candidate *types.Sentence) bool {
	if candidate.ExpDt == nil {
		return belief.ExpDt == nil
	}
	if belief.ExpDt == nil {
		return false
	}
	return *belief.ExpDt >= *candidate.ExpDt
}
