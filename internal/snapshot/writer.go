// Package snapshot writes the iteration results table to timestamped CSV files.
package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agilegame/internal/game"
)

// DefaultDir is where snapshots go unless configured otherwise.
const DefaultDir = "GAME RESULTS"

const fileTimeLayout = "2006-01-02_15-04-05"

// Header is the fixed column order of every snapshot.
var Header = []string{
	"iteration",
	"plan",
	"actual",
	"defects",
	"in_progress",
	"total",
	"delta",
	"ipoints",
	"timestamp",
	"team_players",
}

// Writer saves full result lists into Dir, one new file per call.
type Writer struct {
	Dir string
	now func() time.Time
	log zerolog.Logger
}

// NewWriter returns a writer for dir.
func NewWriter(dir string, log zerolog.Logger) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{Dir: dir, now: time.Now, log: log}
}

// Save writes results to results_<timestamp>.csv and returns the file path.
// An existing file is never replaced; a numeric suffix is added instead.
func (w *Writer) Save(results []game.IterationResult) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	f, path, err := w.create()
	if err != nil {
		return "", err
	}

	cw := csv.NewWriter(f)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	for _, r := range results {
		if err := cw.Write(Record(r)); err != nil {
			f.Close()
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	w.log.Debug().Str("path", path).Int("rows", len(results)).Msg("snapshot written")
	return path, nil
}

func (w *Writer) create() (*os.File, string, error) {
	base := "results_" + w.now().Format(fileTimeLayout)
	for n := 0; ; n++ {
		name := base + ".csv"
		if n > 0 {
			name = fmt.Sprintf("%s_%d.csv", base, n)
		}
		path := filepath.Join(w.Dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create snapshot: %w", err)
		}
	}
}

// Record formats one result in Header order.
func Record(r game.IterationResult) []string {
	return []string{
		strconv.Itoa(r.Iteration),
		strconv.Itoa(r.Plan),
		strconv.Itoa(r.Actual),
		strconv.Itoa(r.Defects),
		strconv.Itoa(r.InProgress),
		strconv.Itoa(r.Total),
		strconv.Itoa(r.Delta),
		formatPoints(r.IPoints),
		r.Timestamp,
		strconv.Itoa(r.TeamPlayers),
	}
}

// formatPoints keeps a trailing ".0" on whole numbers so the column always
// reads as a decimal.
func formatPoints(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(out, ".eEnN") {
		out += ".0"
	}
	return out
}
