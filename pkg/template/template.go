// Package template builds and indexes the ideal swipe template for every
// dictionary word of length >= 2: a fixed-length resampled path across key
// centres, used by the decoder as the geometric ground truth to compare a
// captured gesture against.
package template

import (
	"unicode"

	"github.com/glidetype/inputengine/internal/geo"
	"github.com/glidetype/inputengine/internal/logger"
	"github.com/glidetype/inputengine/pkg/layout"
	"github.com/glidetype/inputengine/pkg/wordgraph"
)

var log = logger.Default("template")

// Template is the ideal path for one dictionary word.
type Template struct {
	WordID    int32
	First     rune
	Last      rune
	Points    []geo.Point
	ArcLength float64
}

// BuildStats reports how many words failed to produce a template, the
// "unmappable template" error kind of the error-handling design: non-fatal,
// silently skipped, with the count surfaced for callers who want it.
type BuildStats struct {
	Considered   int
	Skipped      int
	SkippedWords []string // bounded by maxSkippedWordsTracked
}

const maxSkippedWordsTracked = 256

// Store holds every successfully built template, read-only after
// construction.
type Store struct {
	Templates []Template
}

// Build generates a Template for every word in g of length >= 2 that maps
// fully onto layout l, resampling each to exactly n points. Words that
// can't be mapped (an unplaceable character, or fewer than two distinct
// key centres after collapsing doubled letters) are silently skipped and
// counted in the returned BuildStats.
func Build(g *wordgraph.Graph, l layout.Layout, n int) (*Store, BuildStats) {
	store := &Store{}
	stats := BuildStats{}

	for wordID, word := range g.AllWords() {
		stats.Considered++
		runes := []rune(word)
		if len(runes) < 2 {
			stats.Skipped++
			trackSkipped(&stats, word)
			continue
		}

		pts := make([]geo.Point, 0, len(runes))
		ok := true
		for _, c := range runes {
			p, found := l.Center(unicode.ToLower(c))
			if !found {
				ok = false
				break
			}
			pts = append(pts, p)
		}
		if !ok {
			stats.Skipped++
			trackSkipped(&stats, word)
			continue
		}

		distinct := geo.CollapseDuplicates(pts)
		if len(distinct) < 2 {
			stats.Skipped++
			trackSkipped(&stats, word)
			continue
		}

		arcLen := geo.ArcLength(distinct)
		resampled := geo.Resample(distinct, n)

		store.Templates = append(store.Templates, Template{
			WordID:    int32(wordID),
			First:     unicode.ToLower(runes[0]),
			Last:      unicode.ToLower(runes[len(runes)-1]),
			Points:    resampled,
			ArcLength: arcLen,
		})
	}

	log.Debugf("built %d templates, skipped %d of %d words", len(store.Templates), stats.Skipped, stats.Considered)
	return store, stats
}

func trackSkipped(stats *BuildStats, word string) {
	if len(stats.SkippedWords) < maxSkippedWordsTracked {
		stats.SkippedWords = append(stats.SkippedWords, word)
	}
}
