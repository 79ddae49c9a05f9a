package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCanonicalization(t *testing.T) {
	bird := NewAtom("bird")
	swan := NewAtom("swan")

	a := NewSetExt(bird, swan)
	b := NewSetExt(swan, bird)
	assert.True(t, Equals(a, b), "set extensional construction order must not affect identity")

	dup := NewSetExt(bird, swan, bird)
	assert.Equal(t, 2, len(dup.Children()), "duplicate children must be collapsed")
}

func TestConjCanonicalization(t *testing.T) {
	p := NewInheritance(NewAtom("tweety"), NewAtom("bird")).Build()
	q := NewInheritance(NewAtom("tweety"), NewAtom("yellow")).Build()

	a := NewConj(p, q)
	b := NewConj(q, p)
	assert.True(t, Equals(a, b), "conjunction is unordered")
}

func TestStatementEquality(t *testing.T) {
	bird := NewAtom("bird")
	animal := NewAtom("animal")

	s1 := NewInheritance(bird, animal).Build()
	s2 := NewInheritance(bird, animal).Build()
	s3 := NewImplication(bird, animal).Build()

	assert.True(t, Equals(s1, s2))
	assert.False(t, Equals(s1, s3), "differing copula must not be equal")
}

func TestComplexity(t *testing.T) {
	bird := NewAtom("bird")
	assert.Equal(t, 1, Complexity(bird))

	stmt := NewInheritance(bird, NewAtom("animal")).Build()
	assert.Equal(t, 3, Complexity(stmt))

	nested := NewInheritance(stmt, NewAtom("reflexive")).Build()
	assert.Greater(t, Complexity(nested), Complexity(stmt))
}

func TestSubtermsIncludesSelf(t *testing.T) {
	bird := NewAtom("bird")
	stmt := NewInheritance(bird, NewAtom("animal")).Build()

	subs := Subterms(stmt)
	found := false
	for _, s := range subs {
		if Equals(s, stmt) {
			found = true
		}
	}
	assert.True(t, found, "subterms must include the term itself")
	assert.Len(t, subs, 3) // stmt, bird, animal
}

func TestOperationTermRoundTrip(t *testing.T) {
	arg0 := NewAtom("left_wall")
	term := MakeOperationTerm("^pick", []Term{arg0})

	name, args, ok := DecodeOperation(term)
	require.True(t, ok)
	assert.Equal(t, "^pick", name)
	require.Len(t, args, 1)
	assert.True(t, Equals(args[0], arg0))
}

func TestVariableKindSigils(t *testing.T) {
	x := NewVar(VarIndependent, "x")
	y := NewVar(VarDependent, "y")
	q := NewVar(VarQuery, "z")

	assert.Equal(t, "$x", x.String())
	assert.Equal(t, "#y", y.String())
	assert.Equal(t, "?z", q.String())
	assert.True(t, IsVar(x))
	assert.False(t, IsVar(NewAtom("x")))
}
