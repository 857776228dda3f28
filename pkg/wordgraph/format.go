package wordgraph

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/glidetype/inputengine/internal/logger"
)

var log = logger.Default("wordgraph")

// Save writes g to w in the little-endian binary format described in the
// engine's external-interfaces contract:
//
//	u32 node count
//	u32 word count
//	per node (BFS order): u8 terminal, u32 right-language count,
//	  u16 edge count, then per edge: u16 codepoint, i32 target index
//	per word (word-id order): u16 byte length, UTF-8 bytes
func (g *Graph) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(g.Nodes))); err != nil {
		return fmt.Errorf("wordgraph: writing node count: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(g.Words))); err != nil {
		return fmt.Errorf("wordgraph: writing word count: %w", err)
	}

	for _, n := range g.Nodes {
		terminal := uint8(0)
		if n.Terminal {
			terminal = 1
		}
		if err := binary.Write(bw, binary.LittleEndian, terminal); err != nil {
			return fmt.Errorf("wordgraph: writing terminal flag: %w", err)
		}
		if err := binary.Write(bw, binary.LittleEndian, n.Count); err != nil {
			return fmt.Errorf("wordgraph: writing right-language count: %w", err)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(n.Edges))); err != nil {
			return fmt.Errorf("wordgraph: writing edge count: %w", err)
		}
		for _, e := range n.Edges {
			if e.Label > 0xFFFF {
				return fmt.Errorf("wordgraph: label %q outside BMP, unsupported by baseline format", e.Label)
			}
			if err := binary.Write(bw, binary.LittleEndian, uint16(e.Label)); err != nil {
				return fmt.Errorf("wordgraph: writing edge label: %w", err)
			}
			if err := binary.Write(bw, binary.LittleEndian, e.Target); err != nil {
				return fmt.Errorf("wordgraph: writing edge target: %w", err)
			}
		}
	}

	for _, word := range g.Words {
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("wordgraph: writing word length: %w", err)
		}
		if _, err := bw.WriteString(word); err != nil {
			return fmt.Errorf("wordgraph: writing word bytes: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("wordgraph: flushing: %w", err)
	}
	log.Debugf("saved graph: %d nodes, %d words", len(g.Nodes), len(g.Words))
	return nil
}

// Load reads a graph previously written by Save, validating every count and
// index along the way. Any failure returns ErrCorruptResource wrapped with
// detail; a corrupt resource is never partially loaded.
func Load(r io.Reader) (*Graph, error) {
	br := bufio.NewReader(r)

	var nodeCount, wordCount uint32
	if err := binary.Read(br, binary.LittleEndian, &nodeCount); err != nil {
		return nil, fmt.Errorf("%w: reading node count: %v", ErrCorruptResource, err)
	}
	if err := binary.Read(br, binary.LittleEndian, &wordCount); err != nil {
		return nil, fmt.Errorf("%w: reading word count: %v", ErrCorruptResource, err)
	}

	g := &Graph{
		Nodes: make([]Node, nodeCount),
		Words: make([]string, wordCount),
	}

	for i := range g.Nodes {
		var terminal uint8
		if err := binary.Read(br, binary.LittleEndian, &terminal); err != nil {
			return nil, fmt.Errorf("%w: reading terminal flag for node %d: %v", ErrCorruptResource, i, err)
		}
		var count uint32
		if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("%w: reading right-language count for node %d: %v", ErrCorruptResource, i, err)
		}
		isTerminal := terminal != 0
		if count > wordCount {
			return nil, fmt.Errorf("%w: node %d right-language count %d exceeds word count %d", ErrCorruptResource, i, count, wordCount)
		}
		if isTerminal && count == 0 {
			return nil, fmt.Errorf("%w: node %d terminal with zero right-language count", ErrCorruptResource, i)
		}

		var edgeCount uint16
		if err := binary.Read(br, binary.LittleEndian, &edgeCount); err != nil {
			return nil, fmt.Errorf("%w: reading edge count for node %d: %v", ErrCorruptResource, i, err)
		}

		var edges []Edge
		if edgeCount > 0 {
			edges = make([]Edge, edgeCount)
		}
		for j := range edges {
			var codepoint uint16
			if err := binary.Read(br, binary.LittleEndian, &codepoint); err != nil {
				return nil, fmt.Errorf("%w: reading edge %d label for node %d: %v", ErrCorruptResource, j, i, err)
			}
			var target int32
			if err := binary.Read(br, binary.LittleEndian, &target); err != nil {
				return nil, fmt.Errorf("%w: reading edge %d target for node %d: %v", ErrCorruptResource, j, i, err)
			}
			if target < 0 || uint32(target) >= nodeCount {
				return nil, fmt.Errorf("%w: node %d edge %d target %d out of range", ErrCorruptResource, i, j, target)
			}
			edges[j] = Edge{Label: rune(codepoint), Target: target}
		}

		g.Nodes[i] = Node{Terminal: isTerminal, Count: count, Edges: edges}
	}

	for i := range g.Words {
		var wordLen uint16
		if err := binary.Read(br, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("%w: reading word length for word %d: %v", ErrCorruptResource, i, err)
		}
		buf := make([]byte, wordLen)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: reading word %d bytes: %v", ErrCorruptResource, i, err)
		}
		if !utf8.Valid(buf) {
			return nil, fmt.Errorf("%w: word %d is not valid UTF-8", ErrCorruptResource, i)
		}
		g.Words[i] = string(buf)
	}

	log.Debugf("loaded graph: %d nodes, %d words", len(g.Nodes), len(g.Words))
	return g, nil
}
