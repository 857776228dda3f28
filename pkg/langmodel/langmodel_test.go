package langmodel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeutralScorerIsConstant(t *testing.T) {
	s := NewNeutralScorer()
	assert.Equal(t, 0.5, s.Score("anything", ""))
	assert.Equal(t, 0.5, s.Score("qwerty", "some context"))
}

func TestUnigramScorerRanksByFrequency(t *testing.T) {
	s := NewUnigramScorer(map[string]uint32{
		"the":   1000,
		"quick": 10,
		"zyzzy": 1,
	})

	assert.Greater(t, s.Score("the", ""), s.Score("quick", ""))
	assert.Greater(t, s.Score("quick", ""), s.Score("zyzzy", ""))
	assert.Equal(t, 0.0, s.Score("unknown", ""))
}

func TestUnigramScorerEmptyTable(t *testing.T) {
	s := NewUnigramScorer(map[string]uint32{})
	assert.Equal(t, 0.0, s.Score("anything", ""))
}

func TestUnigramTableRoundTrip(t *testing.T) {
	freq := map[string]uint32{"swipe": 500, "gesture": 20}

	var buf bytes.Buffer
	require.NoError(t, SaveUnigramTable(&buf, freq))

	scorer, err := LoadUnigramTable(&buf)
	require.NoError(t, err)

	assert.Greater(t, scorer.Score("swipe", ""), scorer.Score("gesture", ""))
}

func TestLoadUnigramTableRejectsTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SaveUnigramTable(&buf, map[string]uint32{"word": 1}))

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-2])
	_, err := LoadUnigramTable(truncated)
	assert.ErrorIs(t, err, ErrCorruptTable)
}

func TestContextAwareScorerBoostsRecentToken(t *testing.T) {
	base := NewNeutralScorer()
	s := NewContextAwareScorer(base)

	withoutContext := s.Score("gesture", "")
	withContext := s.Score("gesture", "testing the swipe gesture")

	assert.Greater(t, withContext, withoutContext)
	assert.LessOrEqual(t, withContext, 1.0)
}

func TestContextAwareScorerDecaysByRecency(t *testing.T) {
	base := NewNeutralScorer()
	s := NewContextAwareScorer(base)

	mostRecent := s.Score("gesture", "swipe decoder gesture")
	older := s.Score("swipe", "swipe decoder gesture")

	assert.Greater(t, mostRecent, older)
}

func TestContextAwareScorerIgnoresUnmatchedWords(t *testing.T) {
	base := NewNeutralScorer()
	s := NewContextAwareScorer(base)

	assert.Equal(t, base.Score("qwerty", ""), s.Score("qwerty", "totally unrelated context"))
}
