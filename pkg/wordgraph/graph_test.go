package wordgraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallGraph() *Graph {
	// root(0) --a--> (1) --n--> (2, terminal, "an")
	//                              |--d--> (3, terminal)
	//                              |--t--> (3, terminal)   same node: "and"/"ant"/"any"
	//                              |--y--> (3, terminal)   all share the empty right language
	return &Graph{
		Nodes: []Node{
			{Count: 4, Edges: []Edge{{Label: 'a', Target: 1}}},
			{Count: 4, Edges: []Edge{{Label: 'n', Target: 2}}},
			{Terminal: true, Count: 4, Edges: []Edge{
				{Label: 'd', Target: 3}, {Label: 't', Target: 3}, {Label: 'y', Target: 3},
			}},
			{Terminal: true, Count: 1},
		},
		Words: []string{"an", "and", "ant", "any"},
	}
}

func TestContainsAndWordID(t *testing.T) {
	g := smallGraph()
	assert.True(t, g.Contains("an"))
	assert.True(t, g.Contains("AND"))
	assert.False(t, g.Contains("a"))
	assert.False(t, g.Contains("anyx"))

	id, ok := g.WordID("ant")
	require.True(t, ok)
	assert.Equal(t, int32(2), id)

	word, ok := g.Word(id)
	require.True(t, ok)
	assert.Equal(t, "ant", word)
}

func TestPrefixSearchLimit(t *testing.T) {
	g := smallGraph()
	all := g.PrefixSearch("an", 0)
	assert.ElementsMatch(t, []string{"an", "and", "ant", "any"}, all)

	limited := g.PrefixSearch("an", 2)
	assert.Len(t, limited, 2)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := smallGraph()
	var buf bytes.Buffer
	require.NoError(t, g.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.Words, loaded.Words)
	assert.Equal(t, g.Nodes, loaded.Nodes)
}

func TestLoadRejectsTruncatedStream(t *testing.T) {
	g := smallGraph()
	var buf bytes.Buffer
	require.NoError(t, g.Save(&buf))

	truncated := buf.Bytes()[:buf.Len()-5]
	_, err := Load(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, ErrCorruptResource)
}

func TestLoadRejectsOutOfRangeTarget(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{1, 0, 0, 0}) // node count = 1
	buf.Write([]byte{0, 0, 0, 0}) // word count = 0
	buf.Write([]byte{0})          // terminal = 0
	buf.Write([]byte{0, 0, 0, 0}) // right-language count = 0
	buf.Write([]byte{1, 0})       // edge count = 1
	buf.Write([]byte{'a', 0})     // codepoint
	buf.Write([]byte{5, 0, 0, 0}) // target = 5, out of range for node count 1

	_, err := Load(&buf)
	assert.ErrorIs(t, err, ErrCorruptResource)
}

func TestLoadRejectsTerminalWithZeroCount(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{1, 0, 0, 0}) // node count = 1
	buf.Write([]byte{1, 0, 0, 0}) // word count = 1
	buf.Write([]byte{1})          // terminal = 1
	buf.Write([]byte{0, 0, 0, 0}) // right-language count = 0, invalid for a terminal node
	buf.Write([]byte{0, 0})       // edge count = 0

	_, err := Load(&buf)
	assert.ErrorIs(t, err, ErrCorruptResource)
}

func TestLoadRejectsCountExceedingWordCount(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{1, 0, 0, 0}) // node count = 1
	buf.Write([]byte{1, 0, 0, 0}) // word count = 1
	buf.Write([]byte{1})          // terminal = 1
	buf.Write([]byte{9, 0, 0, 0}) // right-language count = 9, exceeds word count
	buf.Write([]byte{0, 0})       // edge count = 0

	_, err := Load(&buf)
	assert.ErrorIs(t, err, ErrCorruptResource)
}
