// Package graphbuilder constructs a minimal acyclic word graph from a
// lexicographically sorted word list, using Daciuk et al.'s incremental
// construction: a growing tree plus a registry of already-canonicalized
// subtree signatures, frozen bottom-up as each new word's common prefix
// with its predecessor is discovered.
//
// Grounded on the classic DAWG construction described in
// stevehanov.ca/blog/?id=115 (retrieved in this corpus as smhanov/dawg).
package graphbuilder

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/glidetype/inputengine/internal/logger"
	"github.com/glidetype/inputengine/pkg/wordgraph"
)

var log = logger.Default("graphbuilder")

// buildEdge is an outgoing transition during construction, pointing at an
// arena index rather than a final dense node index.
type buildEdge struct {
	label rune
	child int32
}

// buildNode is an arena-resident node under construction. Children are
// referenced exclusively by arena index so the arena can grow without
// invalidating existing references, and so the eventual BFS flatten can
// renumber everything into the dense, position-independent index space the
// runtime graph expects.
type buildNode struct {
	terminal bool
	edges    []buildEdge
}

// uncheckedEntry records one step of the rightmost root-to-leaf path that
// has not yet been checked against the canonical-subtree registry.
type uncheckedEntry struct {
	parent int32
	label  rune
	child  int32
}

// Builder incrementally constructs a minimal word graph. Zero value is not
// usable; create one with New.
type Builder struct {
	arena     []buildNode
	unchecked []uncheckedEntry
	registry  map[string]int32
	prevWord  []rune
	words     []string
}

// New creates a builder with a fresh root node at arena index 0.
func New() *Builder {
	b := &Builder{
		registry: make(map[string]int32),
	}
	b.newNode() // root, arena index 0
	return b
}

func (b *Builder) newNode() int32 {
	idx := int32(len(b.arena))
	b.arena = append(b.arena, buildNode{})
	return idx
}

// Insert adds word to the graph under construction. word must be
// lowercased by the caller (the graph's lookups lowercase at query time,
// but construction trusts its input verbatim so the builder never silently
// changes what a caller thinks it inserted). A repeated word is a no-op.
// A word that sorts before the previously inserted word returns
// ErrMalformedLexicon.
func (b *Builder) Insert(word string) error {
	runes := []rune(word)

	if string(runes) == string(b.prevWord) {
		return nil // duplicate, tolerated no-op
	}
	if len(b.prevWord) > 0 && string(runes) < string(b.prevWord) {
		return fmt.Errorf("%w: %q after %q", ErrMalformedLexicon, word, string(b.prevWord))
	}

	commonLen := commonPrefixLen(b.prevWord, runes)
	b.freeze(commonLen)

	var parent int32
	if len(b.unchecked) == 0 {
		parent = 0 // root
	} else {
		parent = b.unchecked[len(b.unchecked)-1].child
	}

	for _, c := range runes[commonLen:] {
		child := b.newNode()
		b.arena[parent].edges = append(b.arena[parent].edges, buildEdge{label: c, child: child})
		b.unchecked = append(b.unchecked, uncheckedEntry{parent: parent, label: c, child: child})
		parent = child
	}

	b.arena[parent].terminal = true
	b.words = append(b.words, word)
	b.prevWord = runes

	return nil
}

func commonPrefixLen(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// freeze pops the unchecked stack down to depth, checking each popped
// node's subtree against the canonical registry and either reusing an
// existing canonical node or registering this one as canonical.
func (b *Builder) freeze(depth int) {
	for len(b.unchecked) > depth {
		e := b.unchecked[len(b.unchecked)-1]
		b.unchecked = b.unchecked[:len(b.unchecked)-1]

		sig := b.signature(e.child)
		if canon, ok := b.registry[sig]; ok {
			edges := b.arena[e.parent].edges
			last := &edges[len(edges)-1]
			if last.label != e.label {
				// Defensive: should be unreachable given the algorithm's
				// invariant that a parent's most recent edge is always
				// the one just pushed for it.
				for i := range edges {
					if edges[i].label == e.label {
						last = &edges[i]
						break
					}
				}
			}
			last.child = canon
		} else {
			b.registry[sig] = e.child
		}
	}
}

// signature computes the equivalence key for an arena node's subtree: two
// nodes are interchangeable iff they agree on terminal flag and their full
// sequence of (label, canonical target) edges — i.e. iff they have the same
// right language. Children are already canonical at this point because
// freezing proceeds strictly bottom-up.
func (b *Builder) signature(idx int32) string {
	n := b.arena[idx]
	var sb strings.Builder
	if n.terminal {
		sb.WriteByte(1)
	} else {
		sb.WriteByte(0)
	}
	for _, e := range n.edges {
		sb.WriteRune(e.label)
		sb.WriteByte(0)
		var tgtBuf [4]byte
		binary.LittleEndian.PutUint32(tgtBuf[:], uint32(e.child))
		sb.Write(tgtBuf[:])
	}
	return sb.String()
}

// Finish freezes the remaining unchecked path and flattens the arena into
// a dense, BFS-ordered wordgraph.Graph. The builder must not be reused
// after Finish.
func (b *Builder) Finish() *wordgraph.Graph {
	b.freeze(0)

	// BFS from the root (arena index 0), assigning each distinct canonical
	// arena node a dense index in visitation order.
	arenaToIdx := make(map[int32]int32)
	order := []int32{0}
	arenaToIdx[0] = 0

	for i := 0; i < len(order); i++ {
		cur := order[i]
		edges := b.arena[cur].edges
		sorted := make([]buildEdge, len(edges))
		copy(sorted, edges)
		sort.Slice(sorted, func(a, c int) bool { return sorted[a].label < sorted[c].label })
		for _, e := range sorted {
			if _, seen := arenaToIdx[e.child]; !seen {
				arenaToIdx[e.child] = int32(len(order))
				order = append(order, e.child)
			}
		}
	}

	nodes := make([]wordgraph.Node, len(order))
	for denseIdx, arenaIdx := range order {
		n := b.arena[arenaIdx]
		sorted := make([]buildEdge, len(n.edges))
		copy(sorted, n.edges)
		sort.Slice(sorted, func(a, c int) bool { return sorted[a].label < sorted[c].label })
		edges := make([]wordgraph.Edge, len(sorted))
		for i, e := range sorted {
			edges[i] = wordgraph.Edge{Label: e.label, Target: arenaToIdx[e.child]}
		}
		nodes[denseIdx] = wordgraph.Node{
			Terminal: n.terminal,
			Edges:    edges,
		}
	}
	assignCounts(nodes)

	g := &wordgraph.Graph{Nodes: nodes, Words: b.words}
	log.Debugf("finished graph: %d words folded into %d nodes (%d arena nodes before merge)", len(b.words), len(nodes), len(b.arena))
	return g
}

// assignCounts fills in each node's right-language size (the count of words
// reachable through it, itself included if terminal) via a memoized
// post-order walk: shared nodes are visited once no matter how many parents
// reference them, and a node's count is only read once every edge it owns
// has already contributed its own. BFS discovery order doesn't guarantee
// this (a node first reached while flattening one branch can be referenced
// again from a branch enqueued earlier but processed later), so counts are
// computed by this explicit traversal rather than a single pass over the
// dense index order.
func assignCounts(nodes []wordgraph.Node) {
	visited := make([]bool, len(nodes))
	var visit func(idx int32)
	visit = func(idx int32) {
		if visited[idx] {
			return
		}
		visited[idx] = true
		var count uint32
		if nodes[idx].Terminal {
			count = 1
		}
		for _, e := range nodes[idx].Edges {
			visit(e.Target)
			count += nodes[e.Target].Count
		}
		nodes[idx].Count = count
	}
	if len(nodes) > 0 {
		visit(0)
	}
}

// Build is a convenience wrapper: insert every word in words (which must
// already be sorted, see BuildSorted) and finish in one call.
func Build(words []string) (*wordgraph.Graph, error) {
	b := New()
	for _, w := range words {
		if err := b.Insert(w); err != nil {
			return nil, err
		}
	}
	return b.Finish(), nil
}

// BuildSorted sorts a copy of words before building, for callers that
// cannot guarantee sortedness themselves and prefer a forgiving entry point
// over a strict one. Use Build directly, with pre-sorted input, to reject
// unsorted input per the strict contract.
func BuildSorted(words []string) (*wordgraph.Graph, []string) {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)
	g, err := Build(sorted)
	if err != nil {
		// Build only fails on out-of-order input, which cannot happen
		// once sorted.
		panic(fmt.Sprintf("graphbuilder: unreachable: %v", err))
	}
	return g, sorted
}
