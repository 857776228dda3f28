package wordgraph

import "errors"

// ErrCorruptResource is returned by Load when the binary stream fails any
// of the validation checks in the format's contract: a node/word count
// mismatch, an out-of-range edge target, a terminal node with a
// right-language count of zero, a node whose count exceeds the total word
// count, or a truncated/malformed stream.
var ErrCorruptResource = errors.New("wordgraph: corrupt resource")
