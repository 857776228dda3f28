package template

// endpointKey groups templates by their first and last character.
type endpointKey struct {
	first rune
	last  rune
}

// EndpointIndex maps (first-char, last-char) pairs to the indices, into a
// Store's Templates slice, of every template sharing that pair. It lets
// the decoder restrict banded-DTW comparisons to templates whose endpoints
// are geometrically plausible given the input gesture's own endpoints.
type EndpointIndex struct {
	byEndpoints map[endpointKey][]int
}

// BuildEndpointIndex derives an index from every template in s.
func BuildEndpointIndex(s *Store) *EndpointIndex {
	idx := &EndpointIndex{byEndpoints: make(map[endpointKey][]int)}
	for i, t := range s.Templates {
		key := endpointKey{first: t.First, last: t.Last}
		idx.byEndpoints[key] = append(idx.byEndpoints[key], i)
	}
	return idx
}

// Lookup returns the template indices for the exact (first, last) pair, or
// nil if none exist.
func (idx *EndpointIndex) Lookup(first, last rune) []int {
	return idx.byEndpoints[endpointKey{first: first, last: last}]
}

// CandidatesFor returns the deduplicated union of template indices for
// every (s, e) pair with s in starts and e in ends.
func (idx *EndpointIndex) CandidatesFor(starts, ends []rune) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, s := range starts {
		for _, e := range ends {
			for _, i := range idx.Lookup(s, e) {
				if _, dup := seen[i]; !dup {
					seen[i] = struct{}{}
					out = append(out, i)
				}
			}
		}
	}
	return out
}
