package gesture

import (
	"math"

	"github.com/glidetype/inputengine/internal/geo"
)

// computeFeatures derives velocity, direction, and curvature for every
// point in pos/times, using the before/after neighbour at each index
// (clamped at the ends). pos and times must be the same length and
// ordered by non-decreasing time.
func computeFeatures(pos []geo.Point, times []float64) []Point {
	n := len(pos)
	out := make([]Point, n)
	last := n - 1

	for i := 0; i < n; i++ {
		prev := i - 1
		if prev < 0 {
			prev = i
		}
		next := i + 1
		if next > last {
			next = i
		}

		out[i] = Point{Pos: pos[i], Time: times[i]}

		dt := times[next] - times[prev]
		dx := float64(pos[next].X - pos[prev].X)
		dy := float64(pos[next].Y - pos[prev].Y)

		if dt > 0 {
			out[i].Velocity = math.Hypot(dx, dy) / dt
		}
		out[i].Direction = math.Atan2(dy, dx)

		if i == 0 || i == last {
			continue
		}

		beforeX := float64(pos[i].X - pos[prev].X)
		beforeY := float64(pos[i].Y - pos[prev].Y)
		afterX := float64(pos[next].X - pos[i].X)
		afterY := float64(pos[next].Y - pos[i].Y)

		beforeAngle := math.Atan2(beforeY, beforeX)
		afterAngle := math.Atan2(afterY, afterX)
		angleDelta := wrapAngle(afterAngle - beforeAngle)

		arc := math.Hypot(beforeX, beforeY) + math.Hypot(afterX, afterY)
		if arc > 0 {
			out[i].Curvature = angleDelta / arc
		}
	}

	return out
}

// wrapAngle normalises a radian delta into (-pi, pi].
func wrapAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
