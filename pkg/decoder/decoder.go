// Package decoder implements the online SHARK2-style swipe decoder: a
// captured gesture path is resampled, endpoint-filtered against the
// template store, matched by banded DTW with early abandonment, scored
// geometrically, reranked by an injected language model, and truncated
// to a final top-N.
package decoder

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/glidetype/inputengine/internal/geo"
	"github.com/glidetype/inputengine/internal/logger"
	"github.com/glidetype/inputengine/pkg/langmodel"
	"github.com/glidetype/inputengine/pkg/layout"
	"github.com/glidetype/inputengine/pkg/template"
	"github.com/glidetype/inputengine/pkg/wordgraph"
)

// Options holds the decoder's construction-time constants.
type Options struct {
	ResampleN      int
	EndpointRadius float64
	BandWidth      int
	GeometricTopN  int
	FinalTopN      int
}

// DefaultOptions returns the defaults named throughout the source: a
// 64-point resample, a 0.12 endpoint radius, a band width of 10, a
// geometric top-50 survivor set, and a final top-3.
func DefaultOptions() Options {
	return Options{
		ResampleN:      64,
		EndpointRadius: 0.12,
		BandWidth:      10,
		GeometricTopN:  50,
		FinalTopN:      3,
	}
}

// Decoder is the read-only pipeline: a word graph, its template store and
// endpoint index, a key layout, and an injected language-model scorer.
// All of it is safe to share across goroutines for decode calls; the
// scorer itself is invoked only on the calling goroutine.
type Decoder struct {
	graph  *wordgraph.Graph
	store  *template.Store
	index  *template.EndpointIndex
	layout layout.Layout
	scorer langmodel.Scorer
	opts   Options
	log    *log.Logger
}

// New builds a Decoder over a pre-built graph, template store and
// endpoint index, using layout l to resolve endpoint candidates and
// scorer for language reranking.
func New(g *wordgraph.Graph, store *template.Store, index *template.EndpointIndex, l layout.Layout, scorer langmodel.Scorer, opts Options) *Decoder {
	return &Decoder{
		graph:  g,
		store:  store,
		index:  index,
		layout: l,
		scorer: scorer,
		opts:   opts,
		log:    logger.Default("decoder"),
	}
}

// Decode runs the full pipeline over a gesture path (already normalised
// points, at least two) and a textual context string, returning up to
// Options.FinalTopN candidates sorted by combined score descending.
func (d *Decoder) Decode(path []geo.Point, context string) []Candidate {
	if len(path) < 2 {
		return nil
	}

	resampled := geo.Resample(path, d.opts.ResampleN)

	starts := d.endpointChars(resampled[0])
	ends := d.endpointChars(resampled[len(resampled)-1])
	if len(starts) == 0 || len(ends) == 0 {
		return nil
	}

	candidateIdx := d.index.CandidatesFor(starts, ends)
	if len(candidateIdx) == 0 {
		return nil
	}
	d.log.Debug("pre-filter", "candidates", len(candidateIdx))

	tracker := newTopKTracker(d.opts.GeometricTopN)
	for _, idx := range candidateIdx {
		tpl := d.store.Templates[idx]
		dist := bandedDTW(resampled, tpl.Points, d.opts.BandWidth, tracker.Threshold())
		tracker.Offer(idx, dist)
	}

	survivors := tracker.Results()
	if len(survivors) == 0 {
		return nil
	}
	d.log.Debug("dtw survivors", "count", len(survivors), "threshold", tracker.Threshold())

	dStar := 0.0
	for _, s := range survivors {
		if s.distance > dStar {
			dStar = s.distance
		}
	}
	normalizer := 1.2 * dStar

	candidates := make([]Candidate, 0, len(survivors))
	for _, s := range survivors {
		tpl := d.store.Templates[s.templateIdx]
		word, ok := d.graph.Word(tpl.WordID)
		if !ok {
			continue
		}

		geoScore := 0.0
		if normalizer > 0 {
			geoScore = math.Max(0, 1-s.distance/normalizer)
		}
		langScore := d.scorer.Score(word, context)
		combined := 0.6*geoScore + 0.4*langScore

		candidates = append(candidates, Candidate{
			WordID:      tpl.WordID,
			Word:        word,
			Geometric:   geoScore,
			Language:    langScore,
			Combined:    combined,
			DTWDistance: s.distance,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Combined != candidates[j].Combined {
			return candidates[i].Combined > candidates[j].Combined
		}
		if candidates[i].WordID != candidates[j].WordID {
			return candidates[i].WordID < candidates[j].WordID
		}
		return candidates[i].Word < candidates[j].Word
	})

	if len(candidates) > d.opts.FinalTopN {
		candidates = candidates[:d.opts.FinalTopN]
	}
	return candidates
}

// endpointChars returns every character whose key centre, under d.layout,
// lies within Options.EndpointRadius of p.
func (d *Decoder) endpointChars(p geo.Point) []rune {
	var out []rune
	for c := 'a'; c <= 'z'; c++ {
		center, ok := d.layout.Center(c)
		if !ok {
			continue
		}
		if center.Dist(p) <= d.opts.EndpointRadius {
			out = append(out, c)
		}
	}
	return out
}
