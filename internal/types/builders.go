package types

import "fmt"

// StatementBuilder provides a fluent API for statement construction.
type StatementBuilder struct {
	copula    Copula
	subject   Term
	predicate Term
}

// NewInheritance starts building a <subject --> predicate> statement.
func NewInheritance(subject, predicate Term) *StatementBuilder {
	return &StatementBuilder{copula: Inheritance, subject: subject, predicate: predicate}
}

// NewImplication starts building a <subject ==> predicate> statement.
func NewImplication(subject, predicate Term) *StatementBuilder {
	return &StatementBuilder{copula: Implication, subject: subject, predicate: predicate}
}

// As overrides the copula set by the New* constructor.
func (b *StatementBuilder) As(copula Copula) *StatementBuilder {
	b.copula = copula
	return b
}

// Build returns the constructed statement term.
func (b *StatementBuilder) Build() Statement {
	return NewStatement(b.copula, b.subject, b.predicate)
}

// SentenceBuilder provides a fluent API for sentence construction,
// defaulting to an eternal judgment with frequency 1.0 and confidence 0.9.
type SentenceBuilder struct {
	sentence *Sentence
}

// NewSentence starts building a judgment sentence over term with sensible
// defaults (full frequency, confidence 0.9).
func NewSentence(term Term) *SentenceBuilder {
	s := NewJudgment(term, TV{F: 1.0, C: 0.9})
	return &SentenceBuilder{sentence: s}
}

// Punctuation overrides the sentence's punctuation.
func (b *SentenceBuilder) Punctuation(p Punctuation) *SentenceBuilder {
	b.sentence.Punct = p
	return b
}

// Truth sets the truth/desire value.
func (b *SentenceBuilder) Truth(f, c float64) *SentenceBuilder {
	b.sentence.SetTV(TV{F: f, C: c})
	return b
}

// Evidence sets the truth value by converting an evidence count.
func (b *SentenceBuilder) Evidence(pos, total float64) *SentenceBuilder {
	b.sentence.SetTV(Count{Pos: pos, Total: total}.ToTV())
	return b
}

// OccurringAt anchors the sentence to a specific tick instead of eternal.
func (b *SentenceBuilder) OccurringAt(tick int64) *SentenceBuilder {
	b.sentence.OccurrTick = tick
	return b
}

// WithStamp overrides the generated evidence base, e.g. to carry forward a
// derivation's merged stamp.
func (b *SentenceBuilder) WithStamp(stamp Stamp) *SentenceBuilder {
	b.sentence.Stamp = stamp
	return b
}

// DerivedFrom marks the sentence's inference-chain depth.
func (b *SentenceBuilder) DerivedFrom(depth int) *SentenceBuilder {
	b.sentence.DerivDepth = depth
	return b
}

// Build returns the constructed sentence.
func (b *SentenceBuilder) Build() *Sentence {
	return b.sentence
}

// Validate ensures the sentence meets minimum well-formedness requirements.
func (b *SentenceBuilder) Validate() error {
	if b.sentence.Term == nil {
		return fmt.Errorf("sentence term cannot be nil")
	}
	if b.sentence.Punct != Question {
		tv := b.sentence.TV()
		if tv.F < 0 || tv.F > 1 || tv.C < 0 || tv.C > 1 {
			return fmt.Errorf("truth value out of range: %+v", tv)
		}
	}
	return nil
}

// TaskBuilder provides a fluent API for task construction.
type TaskBuilder struct {
	task *Task
}

// NewTaskFrom starts building a task wrapping sentence, with default
// priority and durability.
func NewTaskFrom(sentence *Sentence) *TaskBuilder {
	return &TaskBuilder{task: NewTask(sentence, 0.8, 0.9)}
}

// Priority overrides the initial priority.
func (b *TaskBuilder) Priority(priority float64) *TaskBuilder {
	if priority > 0 {
		b.task.Priority = priority
	}
	return b
}

// Durability overrides the decay durability.
func (b *TaskBuilder) Durability(durability float64) *TaskBuilder {
	if durability > 0 {
		b.task.Durability = durability
	}
	return b
}

// Build returns the constructed task.
func (b *TaskBuilder) Build() *Task {
	return b.task
}
