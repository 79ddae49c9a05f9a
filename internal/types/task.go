package types

import "github.com/google/uuid"

// Task wraps a Sentence with the bookkeeping the declarative working cycle
// needs to select and re-prioritize it: a stable identity, a priority in
// [0, 1], and a durability factor controlling how fast priority decays each
// time the task is processed without being fully consumed.
type Task struct {
	ID         uuid.UUID
	Sentence   *Sentence
	Priority   float64
	Durability float64
}

// NewTask wraps sentence as a fresh task with the given initial priority
// and durability.
func NewTask(sentence *Sentence, priority, durability float64) *Task {
	return &Task{
		ID:         uuid.New(),
		Sentence:   sentence,
		Priority:   priority,
		Durability: durability,
	}
}

// Decay applies the task's durability to its priority after one round of
// processing, per the AIKR forgetting schedule (§4.3).
func (t *Task) Decay() {
	t.Priority *= t.Durability
}
