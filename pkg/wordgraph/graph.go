// Package wordgraph implements the minimal acyclic word graph (a minimal
// DAWG): the read-only dictionary structure consumed at decode time.
// Construction lives in the sibling pkg/graphbuilder package; this package
// only ever walks an already-minimal graph.
package wordgraph

import (
	"sort"
	"strings"
)

// Edge is one outgoing transition from a node: a label character and the
// index of the node it leads to.
type Edge struct {
	Label  rune
	Target int32
}

// Node is one state of the automaton. Edges are kept sorted strictly
// ascending by Label so that edge lookup is a binary search rather than a
// map probe — the out-degree at any real-world node is small enough that
// the sorted array fits a cache line, which beats hashing for this shape.
//
// A node carries no word id of its own: minimization merges nodes whose
// right languages coincide, so a single terminal node is routinely the
// tail of several different words (e.g. every "-at" suffix in a graph
// built from bat/cat/hat/mat/rat converges on one terminal node with no
// outgoing edges). Count is the size of that node's right language — the
// number of words reachable from it, itself included if terminal — and
// lets WordID recover a unique, stable id per word without a per-node
// field that minimization would make ambiguous.
type Node struct {
	Terminal bool
	Count    uint32
	Edges    []Edge
}

// edgeTo returns the target node index for label c from n, or (-1, false)
// if no such edge exists.
func (n Node) edgeTo(c rune) (int32, bool) {
	edges := n.Edges
	i := sort.Search(len(edges), func(i int) bool { return edges[i].Label >= c })
	if i < len(edges) && edges[i].Label == c {
		return edges[i].Target, true
	}
	return -1, false
}

// Graph is the flattened, minimal word automaton: a dense array of nodes
// (node 0 is always the root) plus the parallel array of original word
// strings, indexed by word id.
type Graph struct {
	Nodes []Node
	Words []string
}

// Stats summarizes the size and shape of a built graph, mirroring the kind
// of introspection a dictionary-loading caller wants for diagnostics.
type Stats struct {
	NodeCount     int
	WordCount     int
	MaxOutDegree  int
	TerminalNodes int
}

// Stats computes size statistics by scanning the node array once.
func (g *Graph) Stats() Stats {
	s := Stats{NodeCount: len(g.Nodes), WordCount: len(g.Words)}
	for _, n := range g.Nodes {
		if len(n.Edges) > s.MaxOutDegree {
			s.MaxOutDegree = len(n.Edges)
		}
		if n.Terminal {
			s.TerminalNodes++
		}
	}
	return s
}

// walk follows word (already lowercased) from the root, returning the
// index of the final node reached, or -1 if any character is unmapped.
func (g *Graph) walk(word string) int32 {
	if len(g.Nodes) == 0 {
		return -1
	}
	cur := int32(0)
	for _, c := range word {
		next, ok := g.Nodes[cur].edgeTo(c)
		if !ok {
			return -1
		}
		cur = next
	}
	return cur
}

// Contains reports whether word (case-folded) is a member of the
// dictionary the graph was built from.
func (g *Graph) Contains(word string) bool {
	idx := g.walk(strings.ToLower(word))
	return idx >= 0 && g.Nodes[idx].Terminal
}

// WordID returns word's stable id (its index into g.Words), and whether it
// was found. Because terminal nodes are shared across words with identical
// right languages, the id cannot be read off a single node; instead it is
// computed as a perfect hash while walking: at each node, the counts of
// every sibling edge labelled below the current character are accumulated,
// plus one if the node just passed through was itself terminal (a word
// ending there sorts before any of its own extensions). Since the graph is
// built from lexicographically sorted input, this rank is exactly the
// word's original position in g.Words.
func (g *Graph) WordID(word string) (int32, bool) {
	if len(g.Nodes) == 0 {
		return -1, false
	}

	cur := int32(0)
	var rank uint32
	for _, c := range strings.ToLower(word) {
		n := g.Nodes[cur]
		if n.Terminal {
			rank++
		}
		next, ok := g.rankedEdge(n, c, &rank)
		if !ok {
			return -1, false
		}
		cur = next
	}

	if !g.Nodes[cur].Terminal {
		return -1, false
	}
	return int32(rank), true
}

// rankedEdge finds n's edge labelled c, adding the right-language count of
// every lower-labelled edge passed over into *rank along the way. Edges are
// sorted ascending, so this is a single linear scan.
func (g *Graph) rankedEdge(n Node, c rune, rank *uint32) (int32, bool) {
	for _, e := range n.Edges {
		switch {
		case e.Label < c:
			*rank += g.Nodes[e.Target].Count
		case e.Label == c:
			return e.Target, true
		default:
			return -1, false
		}
	}
	return -1, false
}

// Word resolves a word id back to its original string.
func (g *Graph) Word(id int32) (string, bool) {
	if id < 0 || int(id) >= len(g.Words) {
		return "", false
	}
	return g.Words[id], true
}

// AllWords exposes the full word array, in word-id order.
func (g *Graph) AllWords() []string {
	return g.Words
}

// PrefixSearch walks to the node for prefix (case-folded), then
// depth-first enumerates terminal descendants in sorted-edge order,
// emitting up to limit full words (prefix + accumulated suffix). A limit
// of 0 means unlimited.
func (g *Graph) PrefixSearch(prefix string, limit int) []string {
	lower := strings.ToLower(prefix)
	start := g.walk(lower)
	if start < 0 {
		return nil
	}

	var out []string
	var walk func(nodeIdx int32, suffix []rune)
	walk = func(nodeIdx int32, suffix []rune) {
		if limit > 0 && len(out) >= limit {
			return
		}
		node := g.Nodes[nodeIdx]
		if node.Terminal {
			out = append(out, lower+string(suffix))
			if limit > 0 && len(out) >= limit {
				return
			}
		}
		for _, e := range node.Edges {
			walk(e.Target, append(suffix, e.Label))
			if limit > 0 && len(out) >= limit {
				return
			}
		}
	}
	walk(start, nil)
	return out
}
