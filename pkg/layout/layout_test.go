package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQWERTYMapsAllLetters(t *testing.T) {
	l := QWERTY()
	for c := 'a'; c <= 'z'; c++ {
		p, ok := l.Center(c)
		require.True(t, ok, "missing key for %q", c)
		assert.GreaterOrEqual(t, p.X, float32(0))
		assert.LessOrEqual(t, p.X, float32(1))
		assert.GreaterOrEqual(t, p.Y, float32(0))
		assert.LessOrEqual(t, p.Y, float32(1))
	}
}

func TestQWERTYFoldsCase(t *testing.T) {
	l := QWERTY()
	lower, _ := l.Center('q')
	upper, _ := l.Center('Q')
	assert.Equal(t, lower, upper)
}

func TestQWERTYUnknownChar(t *testing.T) {
	l := QWERTY()
	_, ok := l.Center('1')
	assert.False(t, ok)
}

func TestQWERTYRowOrdering(t *testing.T) {
	l := QWERTY()
	q, _ := l.Center('q')
	a, _ := l.Center('a')
	z, _ := l.Center('z')
	assert.Less(t, q.Y, a.Y)
	assert.Less(t, a.Y, z.Y)
}
