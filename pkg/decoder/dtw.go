package decoder

import (
	"math"

	"github.com/glidetype/inputengine/internal/geo"
)

// BandWidth is a Sakoe-Chiba band radius of 10, the same value
// DefaultOptions uses. bandedDTW takes its radius as the w argument and
// only considers cell (i, j) when |i-j| <= w.
const BandWidth = 10

// bandedDTW computes the accumulated-cost DTW distance between a and b,
// restricted to a Sakoe-Chiba band of radius w, normalised by (n+m) to
// remove length bias. threshold is in the same normalised units as the
// returned distance; internally it is rescaled back to raw accumulated
// cost, since that is the space the row-minimum comparisons operate in.
// If, after completing any row, the row's minimum cost already exceeds
// the raw threshold, the comparison is abandoned early and +Inf is
// returned: later rows can only grow from there, so no path through them
// could beat threshold either.
//
// Unlike a full-matrix DTW, this keeps only two rolling rows of length
// len(b), matching the inner-loop-allocation-free budget the decoder
// runs under.
func bandedDTW(a, b []geo.Point, w int, threshold float64) float64 {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return math.Inf(1)
	}

	rawThreshold := threshold
	if !math.IsInf(threshold, 1) {
		rawThreshold = threshold * float64(n+m)
	}

	inf := math.Inf(1)
	prev := make([]float64, m)
	curr := make([]float64, m)

	for j := range prev {
		prev[j] = inf
	}
	prev[0] = float64(a[0].Dist(b[0]))
	for j := 1; j <= w && j < m; j++ {
		prev[j] = prev[j-1] + float64(a[0].Dist(b[j]))
	}
	if rowMin(prev) > rawThreshold {
		return inf
	}

	for i := 1; i < n; i++ {
		lo := i - w
		if lo < 0 {
			lo = 0
		}
		hi := i + w
		if hi > m-1 {
			hi = m - 1
		}

		for j := range curr {
			curr[j] = inf
		}

		for j := lo; j <= hi; j++ {
			cost := float64(a[i].Dist(b[j]))

			above := prev[j] // C[i-1][j]
			left := inf      // C[i][j-1]
			diag := inf      // C[i-1][j-1]
			if j > 0 {
				left = curr[j-1]
				diag = prev[j-1]
			}

			curr[j] = cost + min3(above, left, diag)
		}

		if rowMin(curr) > rawThreshold {
			return inf
		}

		prev, curr = curr, prev
	}

	return prev[m-1] / float64(n+m)
}

func rowMin(row []float64) float64 {
	min := math.Inf(1)
	for _, v := range row {
		if v < min {
			min = v
		}
	}
	return min
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
