package decoder

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidetype/inputengine/internal/geo"
	"github.com/glidetype/inputengine/pkg/graphbuilder"
	"github.com/glidetype/inputengine/pkg/langmodel"
	"github.com/glidetype/inputengine/pkg/layout"
	"github.com/glidetype/inputengine/pkg/template"
)

func buildFixture(t *testing.T, words []string, opts Options) *Decoder {
	t.Helper()
	g, err := graphbuilder.Build(words)
	require.NoError(t, err)

	l := layout.QWERTY()
	store, _ := template.Build(g, l, opts.ResampleN)
	idx := template.BuildEndpointIndex(store)

	return New(g, store, idx, l, langmodel.NewNeutralScorer(), opts)
}

// keyPath traces the key centres of word under l, matching the geometry
// the template store itself generates for that word.
func keyPath(t *testing.T, l layout.Layout, word string) []geo.Point {
	t.Helper()
	var pts []geo.Point
	for _, c := range word {
		p, ok := l.Center(unicode.ToLower(c))
		require.True(t, ok, "unmapped char %q", c)
		pts = append(pts, p)
	}
	return pts
}

func TestDecodeStraightLineSwipeReturnsTopMatch(t *testing.T) {
	opts := DefaultOptions()
	d := buildFixture(t, []string{"queer", "query", "qwerty"}, opts)

	l := layout.QWERTY()
	path := keyPath(t, l, "qwerty")

	results := d.Decode(path, "")
	require.NotEmpty(t, results)
	assert.Equal(t, "qwerty", results[0].Word)
	assert.Greater(t, results[0].Geometric, 0.9)
}

func TestDecodeEndpointFilterExcludesNonMatchingEnds(t *testing.T) {
	// "queer" ends in 'r', not 'y': under a tight endpoint radius it must
	// never survive the pre-filter for a path ending at 'y'.
	opts := DefaultOptions()
	opts.EndpointRadius = 0.02
	d := buildFixture(t, []string{"queer", "query", "qwerty"}, opts)

	l := layout.QWERTY()
	path := keyPath(t, l, "qwerty")

	results := d.Decode(path, "")
	for _, r := range results {
		assert.NotEqual(t, "queer", r.Word)
	}
}

func TestDecodeShortGestureReturnsEmpty(t *testing.T) {
	opts := DefaultOptions()
	d := buildFixture(t, []string{"qwerty"}, opts)

	l := layout.QWERTY()
	single := keyPath(t, l, "q")

	results := d.Decode(single, "")
	assert.Empty(t, results)
}

func TestDecodeNoPrefilterMatchReturnsEmpty(t *testing.T) {
	opts := DefaultOptions()
	d := buildFixture(t, []string{"qwerty"}, opts)

	l := layout.QWERTY()
	path := keyPath(t, l, "zxcvb")

	results := d.Decode(path, "")
	assert.Empty(t, results)
}

func TestDecodePruningPreservesTopResult(t *testing.T) {
	words := []string{"queer", "query", "qwerty"}
	l := layout.QWERTY()

	wide := DefaultOptions()
	wide.GeometricTopN = 50
	dWide := buildFixture(t, words, wide)

	narrow := DefaultOptions()
	narrow.GeometricTopN = 1
	dNarrow := buildFixture(t, words, narrow)

	path := keyPath(t, l, "qwerty")

	wideResults := dWide.Decode(path, "")
	narrowResults := dNarrow.Decode(path, "")

	require.NotEmpty(t, wideResults)
	require.NotEmpty(t, narrowResults)
	assert.Equal(t, wideResults[0].Word, narrowResults[0].Word)
}
