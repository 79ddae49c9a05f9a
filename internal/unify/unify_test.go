package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nars/internal/types"
)

func TestUnifyGroundTerms(t *testing.T) {
	bird := types.NewAtom("bird")
	animal := types.NewAtom("animal")
	a := types.NewInheritance(bird, animal).Build()
	b := types.NewInheritance(bird, animal).Build()

	_, ok := Unify(a, b, nil)
	assert.True(t, ok)
}

func TestUnifyGroundMismatch(t *testing.T) {
	bird := types.NewAtom("bird")
	animal := types.NewAtom("animal")
	fish := types.NewAtom("fish")

	a := types.NewInheritance(bird, animal).Build()
	b := types.NewInheritance(fish, animal).Build()

	_, ok := Unify(a, b, nil)
	assert.False(t, ok)
}

func TestUnifyBindsVariable(t *testing.T) {
	x := types.NewVar(types.VarIndependent, "x")
	animal := types.NewAtom("animal")
	swan := types.NewAtom("swan")

	pattern := types.NewInheritance(x, animal).Build()
	ground := types.NewInheritance(swan, animal).Build()

	subst, ok := Unify(pattern, ground, nil)
	require.True(t, ok)
	assert.True(t, types.Equals(subst[x.Key()], swan))
}

func TestUnifyRepeatedVariableMustAgree(t *testing.T) {
	x := types.NewVar(types.VarIndependent, "x")
	pattern := types.NewConj(
		types.NewInheritance(x, types.NewAtom("bird")).Build(),
		types.NewInheritance(x, types.NewAtom("yellow")).Build(),
	)
	consistent := types.NewConj(
		types.NewInheritance(types.NewAtom("tweety"), types.NewAtom("bird")).Build(),
		types.NewInheritance(types.NewAtom("tweety"), types.NewAtom("yellow")).Build(),
	)
	inconsistent := types.NewConj(
		types.NewInheritance(types.NewAtom("tweety"), types.NewAtom("bird")).Build(),
		types.NewInheritance(types.NewAtom("opus"), types.NewAtom("yellow")).Build(),
	)

	_, ok := Unify(pattern, consistent, nil)
	assert.True(t, ok)

	_, ok = Unify(pattern, inconsistent, nil)
	assert.False(t, ok)
}

func TestUnifyVariableToVariableFails(t *testing.T) {
	x := types.NewVar(types.VarIndependent, "x")
	y := types.NewVar(types.VarIndependent, "y")

	_, ok := Unify(x, y, nil)
	assert.False(t, ok)
}

func TestUnifyOccursCheck(t *testing.T) {
	x := types.NewVar(types.VarIndependent, "x")
	cyclic := types.NewInheritance(x, types.NewAtom("thing")).Build()

	_, ok := Unify(x, cyclic, nil)
	assert.False(t, ok, "a variable must not be bound to a term containing itself")
}

func TestSubstituteResolvesNestedBindings(t *testing.T) {
	x := types.NewVar(types.VarIndependent, "x")
	y := types.NewVar(types.VarIndependent, "y")
	swan := types.NewAtom("swan")

	subst := Subst{x.Key(): y, y.Key(): swan}
	result := Substitute(x, subst)
	assert.True(t, types.Equals(result, swan))
}

func TestSubstituteRebuildsCompoundTerms(t *testing.T) {
	x := types.NewVar(types.VarIndependent, "x")
	swan := types.NewAtom("swan")
	pattern := types.NewInheritance(x, types.NewAtom("bird")).Build()

	subst := Subst{x.Key(): swan}
	result := Substitute(pattern, subst)

	expected := types.NewInheritance(swan, types.NewAtom("bird")).Build()
	assert.True(t, types.Equals(result, expected))
}
