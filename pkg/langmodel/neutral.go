package langmodel

// NeutralScorer returns a constant score for every word, letting the
// decoder's geometric stage act alone. Used as the placeholder language
// model referenced by the source's own seed scenarios.
type NeutralScorer struct {
	Constant float64
}

// NewNeutralScorer returns a NeutralScorer with the conventional 0.5
// constant.
func NewNeutralScorer() NeutralScorer {
	return NeutralScorer{Constant: 0.5}
}

func (s NeutralScorer) Score(word, context string) float64 {
	return s.Constant
}
