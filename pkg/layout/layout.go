// Package layout maps characters to normalised key-centre coordinates.
// The core treats a Layout as opaque: it only ever calls Center.
package layout

import (
	"strings"

	"github.com/glidetype/inputengine/internal/geo"
)

// Layout is a pluggable character-to-key-centre mapping. Implementations
// may cover any single alphabet; the core never inspects which one.
type Layout interface {
	// Center returns the normalised [0,1]^2 centre of the key for c, and
	// whether c is mapped at all. Implementations are expected to fold
	// case before lookup.
	Center(c rune) (geo.Point, bool)
}

// MapLayout is a Layout backed by a plain character-to-point map, usable
// directly or as the building block for QWERTY and any caller-supplied
// alphabet.
type MapLayout struct {
	keys map[rune]geo.Point
}

// NewMapLayout builds a MapLayout from an explicit mapping. Keys are
// case-folded to lowercase on insertion, matching the lookup behavior.
func NewMapLayout(keys map[rune]geo.Point) *MapLayout {
	folded := make(map[rune]geo.Point, len(keys))
	for c, p := range keys {
		folded[foldRune(c)] = p
	}
	return &MapLayout{keys: folded}
}

// Center implements Layout.
func (m *MapLayout) Center(c rune) (geo.Point, bool) {
	p, ok := m.keys[foldRune(c)]
	return p, ok
}

func foldRune(c rune) rune {
	return []rune(strings.ToLower(string(c)))[0]
}

// rowSpec describes one QWERTY row: its characters in left-to-right order,
// the row's normalised y, the width of one key, and the row's horizontal
// offset in key-widths.
type rowSpec struct {
	chars      string
	y          float32
	keyWidth   float32
	offsetKeys float32
}

// qwertyRows follows the classic three-row stagger: 10/9/7 keys, with rows
// offset by 0, 0.5 and 1.5 key-widths from the left edge.
var qwertyRows = []rowSpec{
	{chars: "qwertyuiop", y: 0.17, keyWidth: 0.1, offsetKeys: 0},
	{chars: "asdfghjkl", y: 0.50, keyWidth: 0.1, offsetKeys: 0.5},
	{chars: "zxcvbnm", y: 0.83, keyWidth: 0.1, offsetKeys: 1.5},
}

// QWERTY returns the default QWERTY layout: three rows at y in
// {0.17, 0.50, 0.83}, key width 0.1, with row offsets of 0, 0.5 and 1.5
// key-widths, key centres spaced one key-width apart starting at the row's
// offset plus half a key-width.
func QWERTY() *MapLayout {
	keys := make(map[rune]geo.Point)
	for _, row := range qwertyRows {
		for i, c := range row.chars {
			x := (row.offsetKeys+float32(i))*row.keyWidth + row.keyWidth/2
			keys[c] = geo.Point{X: x, Y: row.y}
		}
	}
	return NewMapLayout(keys)
}
