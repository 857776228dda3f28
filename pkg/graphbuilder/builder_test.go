package graphbuilder

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidetype/inputengine/pkg/wordgraph"
)

func TestBuildSmallGraph(t *testing.T) {
	words := []string{"an", "and", "ant", "any"}
	g, err := Build(words)
	require.NoError(t, err)

	assert.True(t, g.Contains("an"))
	assert.True(t, g.Contains("and"))
	assert.True(t, g.Contains("ant"))
	assert.True(t, g.Contains("any"))
	assert.False(t, g.Contains("a"))
	assert.False(t, g.Contains("anda"))

	got := g.PrefixSearch("an", 10)
	sort.Strings(got)
	assert.Equal(t, []string{"an", "and", "ant", "any"}, got)

	// "an" keeps its own terminal node; the d/t/y leaves share the empty
	// right language and collapse to a single terminal node.
	stats := g.Stats()
	assert.Equal(t, 2, stats.TerminalNodes)
}

func TestWordIDsAreUnique(t *testing.T) {
	words := []string{"an", "and", "ant", "any"}
	g, err := Build(words)
	require.NoError(t, err)

	seen := make(map[int32]string)
	for _, w := range words {
		id, ok := g.WordID(w)
		require.True(t, ok)
		if other, exists := seen[id]; exists {
			t.Fatalf("word id %d reused by %q and %q", id, other, w)
		}
		seen[id] = w

		resolved, ok := g.Word(id)
		require.True(t, ok)
		assert.Equal(t, w, resolved)
	}
}

func TestInsertRejectsUnsortedInput(t *testing.T) {
	b := New()
	require.NoError(t, b.Insert("ant"))
	err := b.Insert("an")
	assert.ErrorIs(t, err, ErrMalformedLexicon)
}

func TestInsertToleratesDuplicate(t *testing.T) {
	b := New()
	require.NoError(t, b.Insert("cat"))
	require.NoError(t, b.Insert("cat"))
	g := b.Finish()
	assert.True(t, g.Contains("cat"))
	assert.Equal(t, 1, len(g.AllWords()))
}

func TestGraphMinimality(t *testing.T) {
	words := []string{"bat", "cat", "hat", "mat", "rat"}
	g, err := Build(words)
	require.NoError(t, err)

	// All five words share the same "-at" suffix, so their terminal nodes
	// share a right language (the empty string) and must collapse to a
	// single canonical node, same as the "a" node one level up.
	type key struct {
		terminal bool
		edges    string
	}
	seen := make(map[key]int)
	for _, n := range g.Nodes {
		var e string
		for _, ed := range n.Edges {
			e += string(ed.Label)
			e += ":"
			e += string(rune(ed.Target))
		}
		seen[key{n.Terminal, e}]++
	}
	for k, count := range seen {
		assert.LessOrEqual(t, count, 1, "node shape %+v duplicated %d times", k, count)
	}

	stats := g.Stats()
	assert.Equal(t, 1, stats.TerminalNodes, "the five -at suffixes must collapse to one terminal node")
}

func TestRoundTrip(t *testing.T) {
	words := []string{"an", "and", "ant", "any"}
	g, err := Build(words)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Save(&buf))

	loaded, err := wordgraph.Load(&buf)
	require.NoError(t, err)

	for _, w := range words {
		assert.Equal(t, g.Contains(w), loaded.Contains(w))
	}
	assert.Equal(t, g.AllWords(), loaded.AllWords())
	assert.Equal(t, len(g.Nodes), len(loaded.Nodes))
}

func TestBuildSortedAcceptsUnsortedInput(t *testing.T) {
	words := []string{"zebra", "apple", "mango"}
	g, sorted := BuildSorted(words)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, sorted)
	for _, w := range words {
		assert.True(t, g.Contains(w))
	}
}
