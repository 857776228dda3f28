package decoder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glidetype/inputengine/internal/geo"
)

func straightLine(n int, y float32) []geo.Point {
	pts := make([]geo.Point, n)
	for i := 0; i < n; i++ {
		pts[i] = geo.Point{X: float32(i) / float32(n-1), Y: y}
	}
	return pts
}

func TestBandedDTWIdenticalSequencesIsZero(t *testing.T) {
	a := straightLine(20, 0.5)
	b := straightLine(20, 0.5)
	d := bandedDTW(a, b, BandWidth, math.Inf(1))
	assert.InDelta(t, 0, d, 1e-9)
}

func TestBandedDTWSymmetric(t *testing.T) {
	a := straightLine(16, 0.2)
	b := straightLine(16, 0.8)
	d1 := bandedDTW(a, b, BandWidth, math.Inf(1))
	d2 := bandedDTW(b, a, BandWidth, math.Inf(1))
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestBandedDTWPruneSoundness(t *testing.T) {
	a := straightLine(16, 0.2)
	b := straightLine(16, 0.9)

	full := bandedDTW(a, b, BandWidth, math.Inf(1))

	// A threshold safely below the true (normalised) distance must
	// cause an abandonment; the pruned run must never return a finite
	// value smaller than what the unpruned run found.
	pruned := bandedDTW(a, b, BandWidth, full/2)
	if math.IsInf(pruned, 1) {
		return
	}
	assert.GreaterOrEqual(t, pruned, full)
}

func TestBandedDTWEmptyInputs(t *testing.T) {
	d := bandedDTW(nil, straightLine(4, 0), BandWidth, math.Inf(1))
	assert.True(t, math.IsInf(d, 1))
}

func TestBandedDTWOutOfBandCellsPruneCorrectly(t *testing.T) {
	// Two parallel paths; with BandWidth=0 only the diagonal is reachable,
	// and every off-diagonal cell must be treated as out of band rather
	// than blocking the path to the final cell.
	a := straightLine(10, 0)
	b := straightLine(10, 1)
	d := bandedDTW(a, b, 0, math.Inf(1))
	assert.False(t, math.IsInf(d, 1))
	assert.Greater(t, d, 0.0)
}
