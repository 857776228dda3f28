// Package geo holds the small vector-geometry primitives shared by the key
// layout, the template store and the swipe decoder: points, arc length and
// arc-length resampling. None of it is specific to any one component, so it
// lives underneath all of them rather than being duplicated three times.
package geo

import "math"

// Point is a normalised 2-D coordinate, always expected to lie in [0,1]^2
// once it has passed through a Layout or gesture normalisation step.
type Point struct {
	X float32
	Y float32
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// SqDist returns the squared Euclidean distance, avoiding a sqrt when only
// relative comparisons are needed.
func (p Point) SqDist(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return dx*dx + dy*dy
}

// Clamp01 restricts p to the unit square, as required of every gesture point
// and template point.
func Clamp01(p Point) Point {
	return Point{X: clamp1(p.X), Y: clamp1(p.Y)}
}

func clamp1(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ArcLength returns the total length of the polyline through pts.
func ArcLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist(pts[i])
	}
	return total
}

// CollapseDuplicates removes consecutive points that are exactly equal,
// used when mapping double letters (e.g. "tt") to a single key centre.
func CollapseDuplicates(pts []Point) []Point {
	if len(pts) == 0 {
		return pts
	}
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
