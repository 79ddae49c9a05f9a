package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIntervalTableMonotonicDeduped(t *testing.T) {
	table := BuildIntervalTable(1.3, 20)
	assert.Equal(t, 0, table[0])
	for i := 1; i < len(table); i++ {
		assert.Greater(t, table[i], table[i-1])
	}
	assert.LessOrEqual(t, table[len(table)-1], 20)
}

func TestIndexForDeltaPicksLargestNotExceeding(t *testing.T) {
	table := []int{0, 1, 2, 3, 5, 8, 13}
	assert.Equal(t, 4, IndexForDelta(table, 6))
	assert.Equal(t, 0, IndexForDelta(table, -1))
	assert.Equal(t, len(table)-1, IndexForDelta(table, 100))
}
