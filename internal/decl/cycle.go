// Package decl implements the declarative working cycle of spec.md §4.5: a
// bag of judgment and question tasks, credit propagation between them, and
// one round of binary-rule inference per Step call.
//
// Per spec.md §3.7/§5, the declarative task bag is reasoner-thread
// exclusive — it is never touched by the storage worker or any other
// goroutine, so none of its state is mutex-guarded.
package decl

import (
	"math/rand"

	"github.com/google/uuid"

	"nars/internal/concept"
	"nars/internal/rules"
	"nars/internal/types"
	"nars/internal/unify"
)

// AnswerHandler is invoked at most once, when a derived conclusion unifies
// with a pending question's term.
type AnswerHandler func(question types.Term, answer *types.Sentence)

type judgmentTask struct {
	task   *types.Task
	credit float64
}

type questionTask struct {
	task     *types.Task
	handler  AnswerHandler
	answered bool
}

// Cycle owns the declarative task bag and runs the credit-propagation and
// inference steps of one working cycle.
type Cycle struct {
	concepts  *concept.Memory
	judgments map[uuid.UUID]*judgmentTask
	questions map[uuid.UUID]*questionTask
	rng       *rand.Rand
}

// NewCycle creates an empty declarative working cycle backed by concepts
// for rule-conclusion storage.
func NewCycle(concepts *concept.Memory, rng *rand.Rand) *Cycle {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Cycle{
		concepts:  concepts,
		judgments: make(map[uuid.UUID]*judgmentTask),
		questions: make(map[uuid.UUID]*questionTask),
		rng:       rng,
	}
}

// AddJudgment inserts a judgment task with a starting credit equal to its
// priority.
func (c *Cycle) AddJudgment(sentence *types.Sentence, priority float64) *types.Task {
	task := types.NewTask(sentence, priority, 0.9)
	c.judgments[task.ID] = &judgmentTask{task: task, credit: priority}
	return task
}

// AddQuestion inserts a question task with an optional answer handler.
func (c *Cycle) AddQuestion(sentence *types.Sentence, priority float64, handler AnswerHandler) *types.Task {
	task := types.NewTask(sentence, priority, 0.9)
	c.questions[task.ID] = &questionTask{task: task, handler: handler}
	return task
}

// JudgmentCount reports how many judgment tasks are currently in the bag.
func (c *Cycle) JudgmentCount() int {
	return len(c.judgments)
}

func sharesSubterm(a, b types.Term) bool {
	bKeys := make(map[string]struct{})
	for _, s := range types.Subterms(b) {
		bKeys[s.Key()] = struct{}{}
	}
	for _, s := range types.Subterms(a) {
		if _, ok := bKeys[s.Key()]; ok {
			return true
		}
	}
	return false
}

// Step runs one declarative working cycle and returns every conclusion
// stored as a result, per spec.md §4.5 steps 1–6.
func (c *Cycle) Step() []rules.Conclusion {
	c.propagateCredit()
	c.applyComplexityPenalty()

	if len(c.judgments) == 0 {
		return nil
	}

	primary := c.sampleJudgment(c.judgments)
	if primary == nil {
		return nil
	}

	candidates := make(map[uuid.UUID]*judgmentTask)
	for id, jt := range c.judgments {
		if id == primary.task.ID {
			continue
		}
		if sharesSubterm(primary.task.Sentence.Term, jt.task.Sentence.Term) {
			candidates[id] = jt
		}
	}
	secondary := c.sampleJudgment(candidates)
	if secondary == nil {
		return nil
	}

	conclusions := rules.Apply(primary.task.Sentence, secondary.task.Sentence)
	var stored []rules.Conclusion
	for _, concl := range conclusions {
		if c.dedupJudgment(concl.Term) {
			continue
		}
		sentence := types.NewJudgment(concl.Term, concl.TV)
		sentence.Stamp = concl.Stamp
		sentence.DerivDepth = maxDepth(primary.task.Sentence.DerivDepth, secondary.task.Sentence.DerivDepth) + 1

		credit := 1.0 / float64(types.Complexity(concl.Term))
		c.AddJudgment(sentence, credit)
		if c.concepts != nil {
			c.concepts.Store(sentence)
		}
		stored = append(stored, concl)
		c.resolveQuestions(sentence)
	}
	return stored
}

func maxDepth(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// dedupJudgment reports whether an existing judgment task already carries
// structurally the same term.
func (c *Cycle) dedupJudgment(term types.Term) bool {
	for _, jt := range c.judgments {
		if types.Equals(jt.task.Sentence.Term, term) {
			return true
		}
	}
	return false
}

// resolveQuestions invokes the answer handler of every unanswered question
// whose term unifies with sentence's term (spec.md §4.5 step 6), passing the
// question term with the resulting substitution applied so a query-variable
// question (e.g. `?x --> bird`) is reported back in its grounded form.
func (c *Cycle) resolveQuestions(sentence *types.Sentence) {
	for _, qt := range c.questions {
		if qt.answered || qt.handler == nil {
			continue
		}
		subst, ok := unify.Unify(qt.task.Sentence.Term, sentence.Term, nil)
		if !ok {
			continue
		}
		qt.answered = true
		qt.handler(unify.Substitute(qt.task.Sentence.Term, subst), sentence)
	}
}

// propagateCredit adds each question task's priority to every judgment
// task sharing any subterm with it (step 1, additive).
func (c *Cycle) propagateCredit() {
	for _, qt := range c.questions {
		if qt.answered {
			continue
		}
		for _, jt := range c.judgments {
			if sharesSubterm(qt.task.Sentence.Term, jt.task.Sentence.Term) {
				jt.credit += qt.task.Priority
			}
		}
	}
}

// applyComplexityPenalty divides every judgment task's credit by its
// term's complexity (step 2, attention penalty for verbosity).
func (c *Cycle) applyComplexityPenalty() {
	for _, jt := range c.judgments {
		complexity := types.Complexity(jt.task.Sentence.Term)
		if complexity > 0 {
			jt.credit /= float64(complexity)
		}
	}
}

// sampleJudgment performs credit-weighted roulette selection over pool.
func (c *Cycle) sampleJudgment(pool map[uuid.UUID]*judgmentTask) *judgmentTask {
	if len(pool) == 0 {
		return nil
	}
	total := 0.0
	for _, jt := range pool {
		if jt.credit > 0 {
			total += jt.credit
		}
	}
	if total <= 0 {
		for _, jt := range pool {
			return jt // all credits non-positive: arbitrary pick
		}
	}
	target := c.rng.Float64() * total
	running := 0.0
	var last *judgmentTask
	for _, jt := range pool {
		if jt.credit <= 0 {
			continue
		}
		running += jt.credit
		last = jt
		if running >= target {
			return jt
		}
	}
	return last
}
