package proc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nars/internal/concept"
	"nars/internal/goal"
	"nars/internal/operator"
	"nars/internal/storageworker"
	"nars/internal/types"
)

type countingOp struct {
	name  string
	calls int
}

func (o *countingOp) Name() string { return o.name }
func (o *countingOp) Call(args []types.Term) { o.calls++ }

func TestSamplePerceptionsSubmitsCandidateRule(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	concepts := concept.NewMemory(0, 0)
	goals := goal.NewSystem(0, 0)
	ops := operator.NewRegistry()
	op := &countingOp{name: "^eat"}
	ops.Register(op)

	worker := storageworker.NewWorker(concepts, 4, 1)
	defer worker.Close()

	r := NewProcReasoner(DefaultConfig(), goals, concepts, ops, worker, rng)

	nearFood := types.NewAtom("near_food")
	other := types.NewAtom("other")
	eatTerm := types.MakeOperationTerm("^eat", []types.Term{types.NewAtom("{SELF}")})
	fed := types.NewAtom("fed")

	for _, term := range []types.Term{nearFood, other, eatTerm, fed} {
		r.Observe(term)
		r.tick++
	}

	r.samplePerceptions()
	worker.Close()

	beliefs := concepts.BeliefsByTerms([]types.Term{eatTerm})
	require.NotEmpty(t, beliefs, "perception sampling should have produced at least one candidate rule mentioning the op")

	found := false
	for _, b := range beliefs {
		precondition, _, ok := decodeProceduralRule(b.Term)
		if ok && mentionsOp(precondition, eatTerm) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBookkeepIncrementsTick(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	concepts := concept.NewMemory(10, 5)
	goals := goal.NewSystem(10, 5)
	ops := operator.NewRegistry()
	worker := storageworker.NewWorker(concepts, 4, 1)
	defer worker.Close()

	r := NewProcReasoner(DefaultConfig(), goals, concepts, ops, worker, rng)
	before := r.tick
	r.bookkeep()
	assert.Equal(t, before+1, r.tick)
}

func TestDecideExecutesHighExpectationOperator(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	concepts := concept.NewMemory(0, 0)
	goals := goal.NewSystem(0, 0)
	ops := operator.NewRegistry()
	op := &countingOp{name: "^eat"}
	ops.Register(op)
	worker := storageworker.NewWorker(concepts, 4, 1)
	defer worker.Close()

	fed := types.NewAtom("fed")
	nearFood := types.NewAtom("near_food")
	eatOp := types.MakeOperationTerm("^eat", []types.Term{types.NewAtom("{SELF}")})
	rule := types.NewStatement(types.PredImpl, types.NewSeq(nearFood, eatOp), fed)
	concepts.Store(types.NewJudgment(rule, types.TV{F: 0.95, C: 0.95}))

	goals.Add(types.NewGoal(fed, types.TV{F: 1, C: 0.95}), nil, nil, 0)

	cfg := DefaultConfig()
	cfg.DecisionThreshold = 0.1
	r := NewProcReasoner(cfg, goals, concepts, ops, worker, rng)
	r.Observe(nearFood)

	r.decide()
	assert.Equal(t, 1, op.calls)
}
