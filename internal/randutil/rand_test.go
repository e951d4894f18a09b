package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()
	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}

	c, d := New(1), New(2)
	same := 0
	for range 100 {
		if c.IntN(1_000_000) == d.IntN(1_000_000) {
			same++
		}
	}
	assert.Less(t, same, 5, "adjacent seeds should produce unrelated sequences")
}

func TestSeeded(t *testing.T) {
	t.Parallel()
	assert.Equal(t, New(7).IntN(1<<30), Seeded(7).IntN(1<<30))
	assert.NotNil(t, Seeded(0))
}

func TestScripted(t *testing.T) {
	t.Parallel()
	s := &Scripted{Values: []int{5, -3, 12}}
	assert.Equal(t, 1, s.IntN(4))
	assert.Equal(t, 3, s.IntN(4))
	assert.Equal(t, 2, s.IntN(10))
	assert.Equal(t, 1, s.IntN(2), "values repeat once exhausted")

	empty := &Scripted{}
	assert.Equal(t, 0, empty.IntN(3))
	assert.Panics(t, func() { empty.IntN(0) })
}
