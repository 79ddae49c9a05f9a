// Package proc implements the procedural reasoner of spec.md §4.6: a
// ticking state machine that maintains anticipations against a trace of
// observed events, samples candidate temporal rules from that trace, and
// decides whether to invoke a registered operator or babble one, handing
// off to a storageworker.Worker for asynchronous belief revision.
package proc

import (
	"math/rand"

	"nars/internal/concept"
	"nars/internal/goal"
	"nars/internal/operator"
	"nars/internal/storageworker"
	"nars/internal/types"
)

// Config carries the procedural-reasoner tuning knobs of spec.md §6.
type Config struct {
	IntervalExpBase          float64
	IntervalMax              int
	PerceptWindow            int
	DecisionThreshold        float64
	PerceptionSamplesPerStep int
	EnableBabbling           bool
	NOpsMax                  int
	MultiOpProbability       float64
	NConcepts                int
}

// DefaultConfig returns the spec.md §6 defaults.
func DefaultConfig() Config {
	return Config{
		IntervalExpBase:          DefaultIntervalExpBase,
		IntervalMax:              DefaultIntervalMax,
		PerceptWindow:            2,
		DecisionThreshold:        0.58,
		PerceptionSamplesPerStep: 4,
		EnableBabbling:           true,
		NOpsMax:                  1,
		MultiOpProbability:       0.2,
		NConcepts:                concept.DefaultNConcepts,
	}
}

// ProcReasoner is the procedural reasoner's mutable state. It is driven
// from the reasoner's single main thread (§5) and carries no internal
// locking beyond what its collaborators (concept.Memory,
// storageworker.Worker) already provide.
type ProcReasoner struct {
	cfg Config

	trace         *Trace
	anticipations *Anticipations
	intervalTable []int

	goals     *goal.System
	concepts  *concept.Memory
	operators *operator.Registry
	storage   *storageworker.Worker
	rng       *rand.Rand

	tick int64
}

// NewProcReasoner wires a procedural reasoner from its collaborators.
func NewProcReasoner(cfg Config, goals *goal.System, concepts *concept.Memory, operators *operator.Registry, storage *storageworker.Worker, rng *rand.Rand) *ProcReasoner {
	return &ProcReasoner{
		cfg:           cfg,
		trace:         NewTrace(DefaultTraceCap),
		anticipations: NewAnticipations(),
		intervalTable: BuildIntervalTable(cfg.IntervalExpBase, cfg.IntervalMax),
		goals:         goals,
		concepts:      concepts,
		operators:     operators,
		storage:       storage,
		rng:           rng,
	}
}

// Observe appends an externally-witnessed event to the trace, per the
// input facade's isEvent/judgment dispatch (§4.1).
func (r *ProcReasoner) Observe(term types.Term) {
	r.trace.Append(TraceItem{Term: term, EvidenceID: types.NextStampID(), OccurTick: r.tick})
}

// Trace exposes the underlying trace for diagnostics/tests.
func (r *ProcReasoner) Trace() *Trace { return r.trace }

// CurrentTick returns the procedural reasoner's current tick counter, used
// by the input facade to timestamp incoming goal events (§4.1).
func (r *ProcReasoner) CurrentTick() int64 { return r.tick }

// Tick runs one full procedural cycle: narStep0 (anticipation maintenance,
// goal neutralization, perception sampling) followed by narStep1 (decision
// making, AIKR bookkeeping).
func (r *ProcReasoner) Tick() {
	r.narStep0()
	r.narStep1()
}

func (r *ProcReasoner) narStep0() {
	r.maintainAnticipations()
	r.neutralizeGoals()
	r.samplePerceptions()
}

func (r *ProcReasoner) narStep1() {
	r.decide()
	r.bookkeep()
}

// maintainAnticipations implements §4.6.A.
func (r *ProcReasoner) maintainAnticipations() {
	window := r.trace.Window(r.cfg.PerceptWindow)
	observed := make([]types.Term, len(window))
	for i, item := range window {
		observed[i] = item.Term
	}
	r.anticipations.ConfirmPositive(observed)
	r.anticipations.ConfirmNegative(r.tick)
}

// neutralizeGoals implements §4.6.B. Marking an entry satisfied is what
// suppresses further pursuit of it this cycle: HighestExpectationByState
// skips satisfied entries.
func (r *ProcReasoner) neutralizeGoals() {
	last, ok := r.trace.Last()
	if !ok {
		return
	}
	r.goals.EventOccurred(last.Term)
}

// opIndices returns the indices of items in the trace decodable as
// registered operator invocations.
func (r *ProcReasoner) opIndices(items []TraceItem) []int {
	var idxs []int
	for i, item := range items {
		if _, _, ok := r.operators.IsOperationTerm(item.Term); ok {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// samplePerceptions implements §4.6.C.
func (r *ProcReasoner) samplePerceptions() {
	items := r.trace.Items()
	if len(items) < 3 {
		return
	}

	for i := 0; i < r.cfg.PerceptionSamplesPerStep; i++ {
		r.samplePerceptionOnce(items)
	}
}

func (r *ProcReasoner) samplePerceptionOnce(items []TraceItem) {
	opIdxs := r.opIndices(items)
	if len(opIdxs) == 0 {
		return
	}

	nOps := 1
	if r.cfg.NOpsMax > 1 && r.rng.Float64() < r.cfg.MultiOpProbability {
		nOps = 1 + r.rng.Intn(r.cfg.NOpsMax)
	}
	if nOps > len(opIdxs) {
		nOps = len(opIdxs)
	}
	chosenOps := opIdxs[:nOps]
	earliest, latest := chosenOps[0], chosenOps[len(chosenOps)-1]

	if earliest == 0 {
		return // no room for a precondition before the earliest op
	}
	precIdx := r.rng.Intn(earliest)

	consIdx, ok := r.pickConsequenceIndex(items, latest, opIdxs)
	if !ok {
		return
	}

	precItem, consItem := items[precIdx], items[consIdx]
	if _, _, isOp := r.operators.IsOperationTerm(precItem.Term); isOp {
		return
	}
	if _, _, isOp := r.operators.IsOperationTerm(consItem.Term); isOp {
		return
	}
	if precIdx == consIdx {
		return
	}

	opTerms := make([]types.Term, 0, len(chosenOps))
	stampIDs := []uint64{precItem.EvidenceID}
	for _, idx := range chosenOps {
		opTerms = append(opTerms, items[idx].Term)
		stampIDs = append(stampIDs, items[idx].EvidenceID)
	}
	stampIDs = append(stampIDs, consItem.EvidenceID)

	seqChildren := append([]types.Term{precItem.Term}, opTerms...)
	ruleTerm := types.NewStatement(types.PredImpl, types.NewSeq(seqChildren...), consItem.Term)

	dt := consItem.OccurTick - items[latest].OccurTick
	expDt := IndexForDelta(r.intervalTable, dt)

	candidate := types.NewCandidateRule(ruleTerm, types.Stamp{IDs: dedupeIDs(stampIDs)}, expDt)
	r.storage.Submit(candidate)
}

// pickConsequenceIndex picks an index strictly after latest, or — on a
// coin flip — the index of the last non-operation trace item preceding
// the final item (the "penultimate non-op item").
func (r *ProcReasoner) pickConsequenceIndex(items []TraceItem, latest int, opIdxs []int) (int, bool) {
	if r.rng.Intn(2) == 0 {
		isOp := make(map[int]bool, len(opIdxs))
		for _, idx := range opIdxs {
			isOp[idx] = true
		}
		for i := len(items) - 2; i >= 0; i-- {
			if !isOp[i] {
				return i, true
			}
		}
	}
	if latest >= len(items)-1 {
		return 0, false
	}
	return latest + 1 + r.rng.Intn(len(items)-1-latest), true
}

func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) > types.DefaultStampCap {
		out = out[:types.DefaultStampCap]
	}
	return out
}

// decide implements §4.6.E.
func (r *ProcReasoner) decide() {
	window := r.trace.Window(r.cfg.PerceptWindow)

	var bestExp float64 = -1
	var bestEntry *goal.Entry
	var bestPrecondition types.Term

	for _, item := range window {
		entry, precondition, exp, ok := r.goals.HighestExpectationByState(item.Term, r.concepts)
		if !ok {
			continue
		}
		if exp > bestExp {
			bestExp = exp
			bestEntry = entry
			bestPrecondition = precondition
		}
	}

	if bestEntry != nil && bestExp > r.cfg.DecisionThreshold {
		r.actOn(bestPrecondition, bestEntry)
		return
	}

	if r.cfg.EnableBabbling && r.operators.Len() > 0 {
		n := float64(r.operators.Len())
		probability := n / (n * 9)
		if r.rng.Float64() < probability {
			r.babble()
		}
	}
}

// actOn extracts the op term from a unified precondition sequence and, if
// it decodes, executes it and records the invocation into the trace
// (§4.6.E). An anticipation of entry's goal term is pushed only when entry
// carries an EvidenceRef (a derived subgoal), against that evidence; a root
// goal has none, so acting on it pushes no anticipation.
func (r *ProcReasoner) actOn(unifiedPrecondition types.Term, entry *goal.Entry) {
	seq, ok := unifiedPrecondition.(types.Seq)
	if !ok {
		return
	}
	children := seq.Children()
	if len(children) < 2 {
		return
	}
	opTerm := children[len(children)-1]
	name, args, ok := r.operators.IsOperationTerm(opTerm)
	if !ok {
		return
	}
	op, ok := r.operators.Lookup(name)
	if !ok {
		return
	}

	op.Call(args)
	r.Observe(opTerm)

	if entry.EvidenceRef != nil {
		expIdx := 0
		if entry.EvidenceRef.ExpDt != nil {
			expIdx = *entry.EvidenceRef.ExpDt
		}
		r.anticipations.Push(Anticipation{
			EvidenceRef: entry.EvidenceRef,
			Predicted:   entry.Goal.Term,
			Deadline:    r.tick + int64(r.intervalAt(expIdx)),
		})
	}
}

// babble picks a uniformly random registered operator and executes it with
// {SELF} as its lone argument (§4.6.E: "choose a random registered op").
// If a learned procedural belief names this operator, an anticipation of
// its usual consequence is pushed too.
func (r *ProcReasoner) babble() {
	all := r.operators.All()
	if len(all) == 0 {
		return
	}
	op := all[r.rng.Intn(len(all))]
	name := op.Name()
	args := []types.Term{types.NewAtom("{SELF}")}
	op.Call(args)
	opTerm := types.MakeOperationTerm(name, args)
	r.Observe(opTerm)

	for _, belief := range r.concepts.BeliefsByTerms([]types.Term{opTerm}) {
		precondition, consequence, ok := decodeProceduralRule(belief.Term)
		if !ok || !mentionsOp(precondition, opTerm) {
			continue
		}
		expIdx := 0
		if belief.ExpDt != nil {
			expIdx = *belief.ExpDt
		}
		r.anticipations.Push(Anticipation{
			EvidenceRef: belief,
			Predicted:   consequence,
			Deadline:    r.tick + int64(r.intervalAt(expIdx)),
		})
		break
	}
}

// intervalAt returns the interval table entry at idx, clamped in range.
func (r *ProcReasoner) intervalAt(idx int) int {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r.intervalTable) {
		idx = len(r.intervalTable) - 1
	}
	return r.intervalTable[idx]
}

// decodeProceduralRule recognizes a belief of shape (s &/ op...) =/> g.
func decodeProceduralRule(t types.Term) (precondition types.Seq, consequence types.Term, ok bool) {
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

func mentionsOp(seq types.Seq, opTerm types.Term) bool {
	for _, child := range seq.Children() {
		if types.Equals(child, opTerm) {
			return true
		}
	}
	return false
}

// bookkeep implements §4.6.F.
func (r *ProcReasoner) bookkeep() {
	r.trace.Trim()
	if r.tick%101 == 1 {
		r.concepts.Limit(r.cfg.NConcepts)
	}
	if r.tick%3 == 0 {
		r.goals.SampleAndInference(r.concepts, r.rng)
	}
	if r.tick%13 == 1 {
		r.goals.LimitMemory()
	}
	r.tick++
}
