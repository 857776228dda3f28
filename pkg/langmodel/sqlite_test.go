package langmodel

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestScorerDB(t *testing.T, freq map[string]uint32) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scorer.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE word_frequencies (word TEXT PRIMARY KEY, frequency INTEGER)`)
	require.NoError(t, err)

	for word, f := range freq {
		_, err := db.Exec(`INSERT INTO word_frequencies (word, frequency) VALUES (?, ?)`, word, f)
		require.NoError(t, err)
	}
	return path
}

func TestSQLiteScorerRanksByFrequency(t *testing.T) {
	path := newTestScorerDB(t, map[string]uint32{"swipe": 500, "gesture": 20})

	s, err := OpenSQLiteScorer(path)
	require.NoError(t, err)
	defer s.Close()

	require.Greater(t, s.Score("swipe", ""), s.Score("gesture", ""))
	require.Equal(t, 0.0, s.Score("unknown", ""))
}

func TestSQLiteScorerEmptyTable(t *testing.T) {
	path := newTestScorerDB(t, map[string]uint32{})

	s, err := OpenSQLiteScorer(path)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, 0.0, s.Score("anything", ""))
}

func TestSQLiteScorerRejectsMissingFile(t *testing.T) {
	_, err := OpenSQLiteScorer(filepath.Join(t.TempDir(), "does-not-exist.db"))
	require.Error(t, err)
}
