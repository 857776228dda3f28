// Package langmodel supplies pluggable word-scoring implementations for
// the swipe decoder's reranking stage. The decoder depends only on the
// Scorer interface; everything else here is one concrete way to satisfy
// it.
package langmodel

// Scorer resolves a candidate word (and, optionally, a caller-supplied
// context string of recently entered text) to a language-model score in
// [0,1]. A richer implementation may use context; a baseline one may
// ignore it entirely.
type Scorer interface {
	Score(word, context string) float64
}
