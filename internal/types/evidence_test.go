package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountToTVConversion(t *testing.T) {
	tv := Count{Pos: 8, Total: 10}.ToTV()
	assert.InDelta(t, 0.8, tv.F, 1e-9)
	assert.InDelta(t, 10.0/11.0, tv.C, 1e-9)
}

func TestCountToTVEmpty(t *testing.T) {
	tv := Count{}.ToTV()
	assert.Equal(t, 0.5, tv.F)
	assert.Equal(t, 0.0, tv.C)
}

func TestExpectation(t *testing.T) {
	assert.InDelta(t, 0.5, TV{F: 1, C: 0}.Expectation(), 1e-9)
	assert.InDelta(t, 1.0, TV{F: 1, C: 1}.Expectation(), 1e-9)
	assert.InDelta(t, 0.0, TV{F: 0, C: 1}.Expectation(), 1e-9)
}

func TestStampOverlap(t *testing.T) {
	a := NewStamp()
	b := NewStamp()
	assert.False(t, a.Overlaps(b), "freshly minted stamps share no evidence")

	merged := MergeStamps(a, b, DefaultStampCap)
	assert.True(t, merged.Overlaps(a))
	assert.True(t, merged.Overlaps(b))
}

func TestMergeStampsTruncatesToCap(t *testing.T) {
	a := Stamp{IDs: []uint64{1, 2, 3, 4, 5}}
	b := Stamp{IDs: []uint64{6, 7, 8}}

	merged := MergeStamps(a, b, 4)
	assert.Len(t, merged.IDs, 4)
	// newest (largest) IDs are retained
	assert.Contains(t, merged.IDs, uint64(8))
	assert.Contains(t, merged.IDs, uint64(7))
	assert.NotContains(t, merged.IDs, uint64(1))
}

func TestSentenceTVMutation(t *testing.T) {
	term := NewAtom("raining")
	s := NewJudgment(term, TV{F: 0.9, C: 0.8})
	assert.InDelta(t, 0.9, s.TV().F, 1e-9)

	s.SetTV(TV{F: 0.95, C: 0.85})
	assert.InDelta(t, 0.95, s.TV().F, 1e-9)
}
