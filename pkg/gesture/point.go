// Package gesture turns a raw stream of timestamped touch points into a
// normalised, denoised sequence of sampled points with derived per-point
// features, via a small explicit state machine. Suspension in the
// original product's capture loop is purely timing-based sample
// debouncing, not real concurrency; this package re-expresses it as a
// pure state machine driven by explicit event inputs.
package gesture

import "github.com/glidetype/inputengine/internal/geo"

// RawPoint is an absolute device-space touch coordinate, as delivered by
// the host's touch event source.
type RawPoint struct {
	X float64
	Y float64
}

// Rect is the keyboard's bounding rectangle in device space, used to
// normalise RawPoints into the unit square.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Normalize maps p through rect into [0,1]^2, clamping to the unit square
// if rect is degenerate or p falls outside it.
func Normalize(p RawPoint, rect Rect) geo.Point {
	w := rect.MaxX - rect.MinX
	h := rect.MaxY - rect.MinY
	var x, y float64
	if w > 0 {
		x = (p.X - rect.MinX) / w
	}
	if h > 0 {
		y = (p.Y - rect.MinY) / h
	}
	return geo.Clamp01(geo.Point{X: float32(x), Y: float32(y)})
}

// Point is one sampled point of a captured gesture, with derived motion
// features attached once the session ends.
type Point struct {
	Pos       geo.Point
	Time      float64 // seconds
	Velocity  float64 // units/s
	Direction float64 // radians in (-pi, pi]
	Curvature float64 // radians per unit arc length
}
