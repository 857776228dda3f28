package langmodel

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/glidetype/inputengine/internal/logger"
)

var log = logger.Default("langmodel")

// ErrCorruptTable is returned by LoadUnigramTable when the binary stream
// fails any structural check.
var ErrCorruptTable = errors.New("langmodel: corrupt unigram table")

// UnigramScorer scores a word by its standalone frequency, ignoring
// context entirely. Frequencies are held as log-probabilities so that
// unseen words score consistently low without a hard cutoff.
type UnigramScorer struct {
	logProb map[string]float64
	minLog  float64
}

// NewUnigramScorer builds a scorer from a word -> raw frequency count
// map, normalising into log-probabilities relative to the total count.
func NewUnigramScorer(freq map[string]uint32) *UnigramScorer {
	var total uint64
	for _, f := range freq {
		total += uint64(f)
	}
	s := &UnigramScorer{logProb: make(map[string]float64, len(freq))}
	if total == 0 {
		return s
	}
	minLog := 0.0
	for w, f := range freq {
		lp := math.Log(float64(f) / float64(total))
		s.logProb[w] = lp
		if lp < minLog {
			minLog = lp
		}
	}
	s.minLog = minLog
	return s
}

// Score maps a word's log-probability into [0,1] by rescaling linearly
// against the table's own observed minimum; words absent from the table,
// or an empty table, score 0.
func (s *UnigramScorer) Score(word, context string) float64 {
	if len(s.logProb) == 0 {
		return 0
	}
	lp, ok := s.logProb[word]
	if !ok {
		return 0
	}
	if s.minLog == 0 {
		return 1
	}
	return math.Max(0, 1-lp/s.minLog)
}

// SaveUnigramTable writes freq to w in a little-endian binary format:
//
//	u32 entry count
//	per entry: u16 byte length, UTF-8 word bytes, u32 frequency
func SaveUnigramTable(w io.Writer, freq map[string]uint32) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(freq))); err != nil {
		return fmt.Errorf("langmodel: writing entry count: %w", err)
	}
	for word, f := range freq {
		if len(word) > 0xFFFF {
			return fmt.Errorf("langmodel: word %q too long for unigram table", word)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("langmodel: writing word length: %w", err)
		}
		if _, err := bw.WriteString(word); err != nil {
			return fmt.Errorf("langmodel: writing word bytes: %w", err)
		}
		if err := binary.Write(bw, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("langmodel: writing frequency: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("langmodel: flushing: %w", err)
	}
	log.Debugf("saved unigram table: %d entries", len(freq))
	return nil
}

// LoadUnigramTable reads a table previously written by SaveUnigramTable
// and returns a ready-to-use UnigramScorer.
func LoadUnigramTable(r io.Reader) (*UnigramScorer, error) {
	br := bufio.NewReader(r)

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading entry count: %v", ErrCorruptTable, err)
	}

	freq := make(map[string]uint32, count)
	for i := uint32(0); i < count; i++ {
		var wordLen uint16
		if err := binary.Read(br, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("%w: reading word length for entry %d: %v", ErrCorruptTable, i, err)
		}
		buf := make([]byte, wordLen)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: reading word bytes for entry %d: %v", ErrCorruptTable, i, err)
		}
		if !utf8.Valid(buf) {
			return nil, fmt.Errorf("%w: entry %d is not valid UTF-8", ErrCorruptTable, i)
		}
		var f uint32
		if err := binary.Read(br, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("%w: reading frequency for entry %d: %v", ErrCorruptTable, i, err)
		}
		freq[string(buf)] = f
	}

	log.Debugf("loaded unigram table: %d entries", len(freq))
	return NewUnigramScorer(freq), nil
}
