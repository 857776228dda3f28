package template

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/glidetype/inputengine/internal/geo"
)

// ErrCorruptStore is returned by Load when the binary stream ends before
// every declared template and point has been read. Counts and codepoints
// are not otherwise validated.
var ErrCorruptStore = errors.New("template: corrupt store")

// Save writes s to w in a little-endian binary format:
//
//	u32 template count
//	per template: i32 word id, u16 first codepoint, u16 last codepoint,
//	  f64 arc length, u16 point count, then per point: f32 x, f32 y
func (s *Store) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(s.Templates))); err != nil {
		return fmt.Errorf("template: writing template count: %w", err)
	}

	for _, t := range s.Templates {
		if err := binary.Write(bw, binary.LittleEndian, t.WordID); err != nil {
			return fmt.Errorf("template: writing word id: %w", err)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(t.First)); err != nil {
			return fmt.Errorf("template: writing first codepoint: %w", err)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(t.Last)); err != nil {
			return fmt.Errorf("template: writing last codepoint: %w", err)
		}
		if err := binary.Write(bw, binary.LittleEndian, t.ArcLength); err != nil {
			return fmt.Errorf("template: writing arc length: %w", err)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(t.Points))); err != nil {
			return fmt.Errorf("template: writing point count: %w", err)
		}
		for _, p := range t.Points {
			if err := binary.Write(bw, binary.LittleEndian, p.X); err != nil {
				return fmt.Errorf("template: writing point x: %w", err)
			}
			if err := binary.Write(bw, binary.LittleEndian, p.Y); err != nil {
				return fmt.Errorf("template: writing point y: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("template: flushing: %w", err)
	}
	log.Debugf("saved template store: %d templates", len(s.Templates))
	return nil
}

// Load reads a Store previously written by Save.
func Load(r io.Reader) (*Store, error) {
	br := bufio.NewReader(r)

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading template count: %v", ErrCorruptStore, err)
	}

	store := &Store{Templates: make([]Template, count)}
	for i := range store.Templates {
		var wordID int32
		if err := binary.Read(br, binary.LittleEndian, &wordID); err != nil {
			return nil, fmt.Errorf("%w: reading word id for template %d: %v", ErrCorruptStore, i, err)
		}
		var first, last uint16
		if err := binary.Read(br, binary.LittleEndian, &first); err != nil {
			return nil, fmt.Errorf("%w: reading first codepoint for template %d: %v", ErrCorruptStore, i, err)
		}
		if err := binary.Read(br, binary.LittleEndian, &last); err != nil {
			return nil, fmt.Errorf("%w: reading last codepoint for template %d: %v", ErrCorruptStore, i, err)
		}
		var arcLen float64
		if err := binary.Read(br, binary.LittleEndian, &arcLen); err != nil {
			return nil, fmt.Errorf("%w: reading arc length for template %d: %v", ErrCorruptStore, i, err)
		}
		var pointCount uint16
		if err := binary.Read(br, binary.LittleEndian, &pointCount); err != nil {
			return nil, fmt.Errorf("%w: reading point count for template %d: %v", ErrCorruptStore, i, err)
		}

		points := make([]geo.Point, pointCount)
		for j := range points {
			var x, y float32
			if err := binary.Read(br, binary.LittleEndian, &x); err != nil {
				return nil, fmt.Errorf("%w: reading point %d x for template %d: %v", ErrCorruptStore, j, i, err)
			}
			if err := binary.Read(br, binary.LittleEndian, &y); err != nil {
				return nil, fmt.Errorf("%w: reading point %d y for template %d: %v", ErrCorruptStore, j, i, err)
			}
			points[j] = geo.Point{X: x, Y: y}
		}

		store.Templates[i] = Template{
			WordID:    wordID,
			First:     rune(first),
			Last:      rune(last),
			Points:    points,
			ArcLength: arcLen,
		}
	}

	log.Debugf("loaded template store: %d templates", len(store.Templates))
	return store, nil
}
