package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSet_Dedup(t *testing.T) {
	s := NewIDSet(3, 1, 3, 2, 1)
	assert.Equal(t, []int64{3, 1, 2}, s.Slice())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))
}

func TestIDSet_Algebra(t *testing.T) {
	a := NewIDSet(1, 2, 3, 4)
	b := NewIDSet(3, 4, 5)

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, a.Union(b).Slice())
	assert.Equal(t, []int64{3, 4}, a.Intersect(b).Slice())
	assert.Equal(t, []int64{1, 2}, a.Difference(b).Slice())
	assert.Equal(t, []int64{5}, b.Difference(a).Slice())
}

func TestIDSet_ZeroValue(t *testing.T) {
	var s IDSet
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(1))
	assert.Equal(t, []int64{1}, s.Union(NewIDSet(1)).Slice())
	assert.Empty(t, s.Intersect(NewIDSet(1)).Slice())
}

func TestIDSet_SliceIsCopy(t *testing.T) {
	s := NewIDSet(1, 2)
	out := s.Slice()
	out[0] = 99
	assert.Equal(t, []int64{1, 2}, s.Slice())
}
