package geo

// Resample replaces the polyline pts with exactly n points spaced evenly by
// arc length along the original path. The first output point equals pts[0],
// the last equals pts[len(pts)-1] (up to floating-point rounding), and
// consecutive outputs are separated by L/(n-1) where L is the polyline's
// total arc length.
//
// A degenerate polyline (arc length ~0, or fewer than two input points)
// resamples to n copies of the start point. n must be >= 1; Resample panics
// otherwise, since every caller derives n from a fixed configuration
// constant, never from user input.
func Resample(pts []Point, n int) []Point {
	if n < 1 {
		panic("geo: Resample requires n >= 1")
	}
	if len(pts) == 0 {
		return make([]Point, n)
	}
	if len(pts) == 1 || n == 1 {
		out := make([]Point, n)
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	total := ArcLength(pts)
	if total < 1e-9 {
		out := make([]Point, n)
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	step := total / float64(n-1)
	out := make([]Point, 0, n)
	out = append(out, pts[0])

	segIdx := 0
	segStart := pts[0]
	segLen := segStart.Dist(pts[1])
	accBeforeSeg := 0.0

	target := step
	for len(out) < n-1 {
		// Advance to the segment containing `target`.
		for accBeforeSeg+segLen < target && segIdx < len(pts)-2 {
			accBeforeSeg += segLen
			segIdx++
			segStart = pts[segIdx]
			segLen = segStart.Dist(pts[segIdx+1])
		}

		if segLen < 1e-12 {
			out = append(out, segStart)
		} else {
			t := (target - accBeforeSeg) / segLen
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			out = append(out, lerp(segStart, pts[segIdx+1], t))
		}
		target += step
	}

	out = append(out, pts[len(pts)-1])

	// Rounding can occasionally leave the slice a point short or long;
	// pad by repeating the last point or truncate, per the resampling
	// contract's explicit guarantee of exactly n points.
	if len(out) < n {
		last := out[len(out)-1]
		for len(out) < n {
			out = append(out, last)
		}
	} else if len(out) > n {
		out = out[:n]
		out[n-1] = pts[len(pts)-1]
	}
	return out
}

func lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + float32(t)*(b.X-a.X),
		Y: a.Y + float32(t)*(b.Y-a.Y),
	}
}
