package langmodel

import (
	"database/sql"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteScorer reads word frequencies from a bundled SQLite database,
// caching them all in memory when the database is opened rather than querying per
// candidate: the decoder's sub-100ms budget has no room for per-word
// round trips into a database driver.
type SQLiteScorer struct {
	db     *sql.DB
	cache  map[string]float64
	minLog float64
}

// OpenSQLiteScorer opens the database at path, expecting a table
//
//	CREATE TABLE word_frequencies (word TEXT PRIMARY KEY, frequency INTEGER)
//
// and eagerly loads it into memory.
func OpenSQLiteScorer(path string) (*SQLiteScorer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("langmodel: opening sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("langmodel: pinging sqlite database: %w", err)
	}

	s := &SQLiteScorer{db: db, cache: make(map[string]float64)}
	if err := s.reload(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteScorer) reload() error {
	rows, err := s.db.Query(`SELECT word, frequency FROM word_frequencies`)
	if err != nil {
		return fmt.Errorf("langmodel: querying word_frequencies: %w", err)
	}
	defer rows.Close()

	freq := make(map[string]uint32)
	var total uint64
	for rows.Next() {
		var word string
		var f uint32
		if err := rows.Scan(&word, &f); err != nil {
			return fmt.Errorf("langmodel: scanning word_frequencies row: %w", err)
		}
		freq[word] = f
		total += uint64(f)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("langmodel: iterating word_frequencies: %w", err)
	}

	s.minLog = 0
	if total > 0 {
		for word, f := range freq {
			lp := math.Log(float64(f) / float64(total))
			s.cache[word] = lp
			if lp < s.minLog {
				s.minLog = lp
			}
		}
	}
	log.Debugf("sqlite scorer loaded %d words", len(freq))
	return nil
}

// Close releases the underlying database connection.
func (s *SQLiteScorer) Close() error {
	return s.db.Close()
}

func (s *SQLiteScorer) Score(word, context string) float64 {
	if len(s.cache) == 0 {
		return 0
	}
	lp, ok := s.cache[word]
	if !ok {
		return 0
	}
	if s.minLog == 0 {
		return 1
	}
	return math.Max(0, 1-lp/s.minLog)
}
