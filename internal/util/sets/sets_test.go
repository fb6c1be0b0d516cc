package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasicOps(t *testing.T) {
	s := New("a", "b")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	assert.True(t, s.Has("c"))
	assert.Equal(t, 3, s.Len())

	s.Delete("a")
	assert.False(t, s.Has("a"))
}

func TestSetCloneIndependent(t *testing.T) {
	s := New(1, 2)
	c := s.Clone()
	c.Add(3)
	assert.True(t, c.Has(3))
	assert.False(t, s.Has(3))
}

func TestSorted(t *testing.T) {
	s := New("delta", "alpha", "charlie", "bravo")
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, Sorted(s))
	assert.Empty(t, Sorted(New[string]()))
}
