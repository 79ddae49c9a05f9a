// Package reasoner is the input facade of spec.md §4.1: it wires the
// declarative working cycle, the procedural reasoner, concept-addressed
// memory, the goal system, the operator registry, and the asynchronous
// storage worker into one reasoning loop, and dispatches every incoming
// term or Narsese string to the right subsystem.
package reasoner

import (
	"math/rand"

	"nars/internal/concept"
	"nars/internal/decl"
	"nars/internal/goal"
	"nars/internal/obslog"
	"nars/internal/operator"
	"nars/internal/proc"
	"nars/internal/storageworker"
	"nars/internal/types"
)

// Operator re-exports the callable-operation interface of §4.8 so callers
// need not import internal/operator directly to register one.
type Operator = operator.Operator

// AnswerHandler is invoked at most once, when a derived declarative
// conclusion unifies with a pending question's term.
type AnswerHandler = decl.AnswerHandler

// Parser defers Narsese text parsing to an external, out-of-scope
// collaborator (spec.md §6). NopParser is the always-fails stub used when
// no real parser is wired in.
type Parser interface {
	Parse(text string) (*types.Sentence, bool)
}

// NopParser never parses anything; Parse always reports false.
type NopParser struct{}

// Parse implements Parser.
func (NopParser) Parse(text string) (*types.Sentence, bool) { return nil, false }

// Config carries every tunable the reasoning loop needs, split between the
// procedural reasoner's knobs (proc.Config) and the memory/goal capacity
// bounds that are this package's own concern.
type Config struct {
	Proc               proc.Config
	NConcepts          int
	KBeliefs           int
	MaxGoals           int
	MaxGoalDepth       int
	StorageWorkerDepth int
	StorageWorkerCount int
	Verbosity          int
}

// DefaultConfig returns the spec.md §6 defaults for every knob.
func DefaultConfig() Config {
	return Config{
		Proc:               proc.DefaultConfig(),
		NConcepts:          concept.DefaultNConcepts,
		KBeliefs:           concept.DefaultKBeliefs,
		MaxGoals:           goal.DefaultMaxEntries,
		MaxGoalDepth:       goal.DefaultMaxDepth,
		StorageWorkerDepth: storageworker.DefaultChannelDepth,
		StorageWorkerCount: storageworker.DefaultWorkerCount,
		Verbosity:          0,
	}
}

// Reasoner is the fully wired core reasoning loop: one declarative working
// cycle, one procedural reasoner, one concept memory, one goal system, one
// operator registry, and one asynchronous storage worker, all driven from
// a single goroutine except the storage worker itself (spec.md §3.7/§5).
type Reasoner struct {
	cfg Config
	log *obslog.Logger

	concepts *concept.Memory
	goals    *goal.System
	ops      *operator.Registry
	storage  *storageworker.Worker
	decl     *decl.Cycle
	proc     *proc.ProcReasoner

	parser Parser
	rng    *rand.Rand
}

// New wires a Reasoner from cfg. parser may be nil, in which case
// inputNarsese always reports failure (NopParser semantics). rng may be
// nil, in which case a default-seeded source is used.
func New(cfg Config, parser Parser, rng *rand.Rand) *Reasoner {
	if parser == nil {
		parser = NopParser{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	concepts := concept.NewMemory(cfg.NConcepts, cfg.KBeliefs)
	goals := goal.NewSystem(cfg.MaxGoals, cfg.MaxGoalDepth)
	ops := operator.NewRegistry()
	storage := storageworker.NewWorker(concepts, cfg.StorageWorkerDepth, cfg.StorageWorkerCount)
	declCycle := decl.NewCycle(concepts, rng)
	procReasoner := proc.NewProcReasoner(cfg.Proc, goals, concepts, ops, storage, rng)

	return &Reasoner{
		cfg:      cfg,
		log:      obslog.Default(cfg.Verbosity),
		concepts: concepts,
		goals:    goals,
		ops:      ops,
		storage:  storage,
		decl:     declCycle,
		proc:     procReasoner,
		parser:   parser,
		rng:      rng,
	}
}

// RegisterOperator adds op to the operator registry consulted during
// decision making and babbling (§4.8).
func (r *Reasoner) RegisterOperator(op Operator) {
	r.ops.Register(op)
}

// Concepts exposes concept-addressed memory for diagnostics and for
// wiring an external question-answering surface.
func (r *Reasoner) Concepts() *concept.Memory { return r.concepts }

// Goals exposes the goal system for diagnostics.
func (r *Reasoner) Goals() *goal.System { return r.goals }

// Proc exposes the procedural reasoner for diagnostics.
func (r *Reasoner) Proc() *proc.ProcReasoner { return r.proc }

// InputTerm dispatches term per spec.md §4.1: a goal-punctuated event goes
// to the goal system; a judgment-punctuated event is appended to the
// procedural trace; a non-event `=/>` statement is folded into
// `Count(1,1)` temporal knowledge and submitted for asynchronous
// revision/insertion; everything else is a declarative task. A
// goal-punctuated eternal (non-event) term is a semantic misuse per §7 and
// is logged and dropped rather than inserted.
func (r *Reasoner) InputTerm(term types.Term, punct types.Punctuation, tv types.TV, isEvent bool) {
	if isEvent {
		switch punct {
		case types.Goal:
			sentence := types.NewGoal(term, tv).WithTime(r.proc.CurrentTick())
			_, _ = r.goals.Add(sentence, nil, nil, 0)
			return
		case types.Judgment:
			r.proc.Observe(term)
			return
		}
	}

	if stmt, ok := term.(types.Statement); ok && stmt.Copula == types.PredImpl {
		sentence := types.NewCountJudgment(term, types.Count{Pos: 1, Total: 1})
		r.storage.Submit(sentence)
		return
	}

	if punct == types.Goal {
		r.log.Warn("rejected eternal goal judgment for term %s: goals must be events", term.Key())
		return
	}

	switch punct {
	case types.Question:
		r.decl.AddQuestion(types.NewQuestion(term), 1.0, nil)
	default:
		sentence := types.NewJudgment(term, tv)
		r.decl.AddJudgment(sentence, 1.0)
		r.concepts.Store(sentence)
	}
}

// InputQuestion inserts a declarative question task, invoking handler at
// most once if a derived conclusion answers it.
func (r *Reasoner) InputQuestion(term types.Term, handler AnswerHandler) {
	r.decl.AddQuestion(types.NewQuestion(term), 1.0, handler)
}

// InputNarsese defers to the configured Parser; on success the parsed
// sentence is routed through InputTerm using its own punctuation/TV.
func (r *Reasoner) InputNarsese(text string) bool {
	sentence, ok := r.parser.Parse(text)
	if !ok {
		r.log.Warn("failed to parse Narsese input: %q", text)
		return false
	}
	r.InputTerm(sentence.Term, sentence.Punct, sentence.TV(), sentence.OccurrTick >= 0)
	return true
}

// Step runs one full reasoning cycle: one declarative working-cycle step
// followed by one procedural tick.
func (r *Reasoner) Step() {
	r.decl.Step()
	r.proc.Tick()
}

// Close shuts down the asynchronous storage worker, draining any
// in-flight candidate revisions before returning.
func (r *Reasoner) Close() {
	r.storage.Close()
}
