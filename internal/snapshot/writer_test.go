package snapshot

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agilegame/internal/game"
)

func sampleResults(n int) []game.IterationResult {
	out := make([]game.IterationResult, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, game.IterationResult{
			Iteration:   i,
			Plan:        10,
			Actual:      10,
			Defects:     1,
			InProgress:  2,
			Total:       9,
			Delta:       -1,
			IPoints:     1299.688,
			Timestamp:   "2026-03-14T09:30:00",
			TeamPlayers: 6,
		})
	}
	return out
}

func newTestWriter(t *testing.T, at time.Time) *Writer {
	t.Helper()
	w := NewWriter(filepath.Join(t.TempDir(), "GAME RESULTS"), zerolog.Nop())
	w.now = func() time.Time { return at }
	return w
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter_Save(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 5, 0, time.Local)
	w := newTestWriter(t, at)

	path, err := w.Save(sampleResults(3))
	require.NoError(t, err)
	assert.Equal(t, "results_2026-03-14_09-30-05.csv", filepath.Base(path))

	rows := readCSV(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"1", "10", "10", "1", "2", "9", "-1", "1299.688", "2026-03-14T09:30:00", "6"}, rows[1])
	assert.Equal(t, "3", rows[3][0])
}

func TestWriter_SaveNeverOverwrites(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 5, 0, time.Local)
	w := newTestWriter(t, at)

	first, err := w.Save(sampleResults(3))
	require.NoError(t, err)
	second, err := w.Save(sampleResults(5))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "results_2026-03-14_09-30-05_1.csv", filepath.Base(second))
	assert.Len(t, readCSV(t, first), 4)
	assert.Len(t, readCSV(t, second), 6)
}

func TestWriter_SaveFailsWhenDirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := NewWriter(blocker, zerolog.Nop())
	_, err := w.Save(sampleResults(1))
	assert.Error(t, err)
}

func TestWriter_WorksAsStoreSnapshotter(t *testing.T) {
	w := newTestWriter(t, time.Now())
	s := game.NewStore(game.WithSnapshotter(w))
	var last game.Submission
	for i := 0; i < 3; i++ {
		sub, err := s.Submit(0, 0)
		require.NoError(t, err)
		last = sub
	}
	require.NotEmpty(t, last.SnapshotPath)
	assert.Len(t, readCSV(t, last.SnapshotPath), 4)
}

func TestRecord_WholePointsKeepDecimal(t *testing.T) {
	r := sampleResults(1)[0]
	r.IPoints = 1200
	assert.Equal(t, "1200.0", Record(r)[7])
}
