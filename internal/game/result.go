package game

import (
	"fmt"
	"time"
)

// timestampLayout is the seconds-precision ISO-8601 form. A microsecond
// fraction is appended only when it is non-zero.
const timestampLayout = "2006-01-02T15:04:05"

// IterationResult is the record of one submitted iteration. It is never
// modified after Submit creates it.
type IterationResult struct {
	Iteration   int     `json:"iteration"`
	Plan        int     `json:"plan"`
	Actual      int     `json:"actual"`
	Defects     int     `json:"defects"`
	InProgress  int     `json:"in_progress"`
	Total       int     `json:"total"`
	Delta       int     `json:"delta"`
	IPoints     float64 `json:"ipoints"`
	Timestamp   string  `json:"timestamp"`
	TeamPlayers int     `json:"team_players"`
}

// FormatTimestamp renders t as local ISO-8601 with optional microseconds,
// e.g. 2026-03-14T09:30:00 or 2026-03-14T09:30:00.123456.
func FormatTimestamp(t time.Time) string {
	s := t.Format(timestampLayout)
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

func newIterationResult(s State, defects, inProgress int, points float64, now time.Time) IterationResult {
	total := s.BallCount - defects
	return IterationResult{
		Iteration:   s.CurrentIteration,
		Plan:        s.PlanNumber,
		Actual:      s.BallCount,
		Defects:     defects,
		InProgress:  inProgress,
		Total:       total,
		Delta:       total - s.PlanNumber,
		IPoints:     points,
		Timestamp:   FormatTimestamp(now),
		TeamPlayers: s.NumberOfPlayers,
	}
}
