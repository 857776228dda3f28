package langmodel

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// ContextRecencyWindow bounds how many trailing context tokens are
// indexed for the recency boost.
const ContextRecencyWindow = 8

// ContextBoost is the maximum score added to a word that exactly matches
// the most recently entered context token, decaying linearly across
// ContextRecencyWindow older tokens.
const ContextBoost = 0.15

// ContextAwareScorer wraps a base Scorer and adds a bounded recency boost
// for words that recently appeared in the caller-supplied context string,
// indexed with a patricia trie keyed by token.
type ContextAwareScorer struct {
	base Scorer
}

// NewContextAwareScorer wraps base with recency-aware boosting.
func NewContextAwareScorer(base Scorer) *ContextAwareScorer {
	return &ContextAwareScorer{base: base}
}

// Score computes the base score and adds a recency boost when word
// matches one of context's trailing tokens, clamped to [0,1].
func (s *ContextAwareScorer) Score(word, context string) float64 {
	base := s.base.Score(word, context)

	trie := recencyTrie(context)
	item := trie.Get(patricia.Prefix(word))
	if item == nil {
		return base
	}

	rank := item.(int) // 0 = most recent
	boost := ContextBoost * (1 - float64(rank)/float64(ContextRecencyWindow))
	if boost < 0 {
		boost = 0
	}

	total := base + boost
	if total > 1 {
		total = 1
	}
	return total
}

// recencyTrie indexes the last ContextRecencyWindow whitespace-delimited
// tokens of context, most recent first, keyed by token with its recency
// rank as the stored item. Rebuilding per call keeps the scorer stateless
// and safe to reuse across gestures with differing context.
func recencyTrie(context string) *patricia.Trie {
	trie := patricia.NewTrie()
	tokens := strings.Fields(context)

	start := len(tokens) - ContextRecencyWindow
	if start < 0 {
		start = 0
	}
	recent := tokens[start:]

	for i := len(recent) - 1; i >= 0; i-- {
		rank := len(recent) - 1 - i
		token := strings.ToLower(recent[i])
		if existing := trie.Get(patricia.Prefix(token)); existing != nil {
			if existing.(int) <= rank {
				continue
			}
		}
		trie.Set(patricia.Prefix(token), rank)
	}

	return trie
}
