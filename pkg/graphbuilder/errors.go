package graphbuilder

import "errors"

// ErrMalformedLexicon is returned by Insert when the caller feeds words out
// of lexicographic order. The incremental minimal-DAWG construction only
// works correctly on sorted input; the builder refuses to silently produce
// a non-minimal or incorrect graph.
var ErrMalformedLexicon = errors.New("graphbuilder: words must be inserted in sorted order")
