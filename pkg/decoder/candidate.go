package decoder

// Candidate is one ranked decode result.
type Candidate struct {
	WordID      int32
	Word        string
	Geometric   float64 // in [0,1], best close to 1
	Language    float64 // in [0,1], as returned by the injected scorer
	Combined    float64 // 0.6*Geometric + 0.4*Language
	DTWDistance float64
}
