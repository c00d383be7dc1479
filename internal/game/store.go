package game

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"agilegame/internal/scoring"
	"agilegame/pkg/realtime"
)

// MaxIterations is the number of iterations in one game.
const MaxIterations = 5

// Events published on the store's broadcaster.
const (
	EventState   = "state"
	EventResults = "results"
)

// ErrAlreadyCounting is returned by Start while an iteration is running.
var ErrAlreadyCounting = errors.New("already counting")

// State is the whole game: the running iteration and everything submitted so far.
type State struct {
	CurrentIteration int
	PlanNumber       int
	BallCount        int
	IsCounting       bool
	NumberOfPlayers  int
	IterationsData   []IterationResult
}

func initialState() State {
	return State{CurrentIteration: 1}
}

// Snapshotter persists the full result list at checkpoints.
type Snapshotter interface {
	Save(results []IterationResult) (string, error)
}

// Submission is what Submit hands back to the caller.
type Submission struct {
	Result           IterationResult
	CurrentIteration int
	// SnapshotPath is set when this submission hit a checkpoint.
	SnapshotPath string
}

// Store owns the game state. Every field is guarded by mu, including the live
// ball count touched by the button callback.
type Store struct {
	mu        sync.Mutex
	state     State
	counts    *realtime.Queue[int]
	events    *realtime.Broadcaster[string]
	snapshots Snapshotter
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSnapshotter sets where checkpoint snapshots are written.
func WithSnapshotter(s Snapshotter) Option {
	return func(st *Store) { st.snapshots = s }
}

// WithClock overrides time.Now for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

// WithLogger sets the store's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(st *Store) { st.log = l }
}

// NewStore creates a store holding a fresh game.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state:  initialState(),
		counts: realtime.NewQueue[int](),
		events: realtime.NewBroadcaster[string](),
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Counts is the queue of live ball counts consumed by the live counter stream.
func (s *Store) Counts() *realtime.Queue[int] {
	return s.counts
}

// Events returns the broadcaster that announces state and result changes.
func (s *Store) Events() *realtime.Broadcaster[string] {
	return s.events
}

// SetPlayers records the team size used for later submissions.
func (s *Store) SetPlayers(n int) {
	s.mu.Lock()
	s.state.NumberOfPlayers = n
	s.mu.Unlock()
	s.log.Info().Int("players", n).Msg("team size set")
	s.events.Publish(EventState)
}

// SetPlan records the target ball count for the next iteration.
func (s *Store) SetPlan(n int) {
	s.mu.Lock()
	s.state.PlanNumber = n
	s.mu.Unlock()
	s.log.Info().Int("plan", n).Msg("plan set")
	s.events.Publish(EventState)
}

// Start begins counting. The count goes back to zero and the live queue is
// reseeded with 0 so connected streams show the reset.
func (s *Store) Start() error {
	s.mu.Lock()
	if s.state.IsCounting {
		s.mu.Unlock()
		return ErrAlreadyCounting
	}
	s.state.BallCount = 0
	s.state.IsCounting = true
	s.counts.Reset(0)
	iteration := s.state.CurrentIteration
	s.mu.Unlock()

	s.log.Info().Int("iteration", iteration).Msg("iteration started")
	s.events.Publish(EventState)
	return nil
}

// Stop ends counting and returns the final count.
func (s *Store) Stop() int {
	s.mu.Lock()
	s.state.IsCounting = false
	count := s.state.BallCount
	s.mu.Unlock()

	s.log.Info().Int("final_count", count).Msg("iteration stopped")
	s.events.Publish(EventState)
	return count
}

// Press is the button callback. While counting it adds one ball and queues
// the new count; otherwise it does nothing and returns false.
func (s *Store) Press() (int, bool) {
	s.mu.Lock()
	if !s.state.IsCounting {
		s.mu.Unlock()
		return 0, false
	}
	s.state.BallCount++
	count := s.state.BallCount
	// Pushed under the lock so a concurrent Start cannot reseed in between.
	s.counts.Push(count)
	s.mu.Unlock()

	s.log.Debug().Int("count", count).Msg("ball counted")
	return count, true
}

// Submit scores the current iteration, records it and moves on to the next
// iteration (never past MaxIterations). When the number of results reaches a
// checkpoint the full list is snapshotted; a snapshot failure is returned
// alongside the recorded submission.
func (s *Store) Submit(defects, inProgress int) (Submission, error) {
	s.mu.Lock()
	points := scoring.Score(s.state.BallCount, s.state.PlanNumber, inProgress)
	result := newIterationResult(s.state, defects, inProgress, points, s.now())
	s.state.IterationsData = append(s.state.IterationsData, result)
	if s.state.CurrentIteration < MaxIterations {
		s.state.CurrentIteration++
	}
	sub := Submission{Result: result, CurrentIteration: s.state.CurrentIteration}
	var checkpoint []IterationResult
	if isCheckpoint(len(s.state.IterationsData)) {
		checkpoint = slices.Clone(s.state.IterationsData)
	}
	s.mu.Unlock()

	s.log.Info().
		Int("iteration", result.Iteration).
		Int("actual", result.Actual).
		Int("defects", defects).
		Int("in_progress", inProgress).
		Float64("ipoints", points).
		Msg("iteration submitted")
	s.events.Publish(EventResults)
	s.events.Publish(EventState)

	if checkpoint == nil || s.snapshots == nil {
		return sub, nil
	}
	path, err := s.snapshots.Save(checkpoint)
	if err != nil {
		s.log.Error().Err(err).Int("results", len(checkpoint)).Msg("snapshot failed")
		return sub, fmt.Errorf("save snapshot: %w", err)
	}
	sub.SnapshotPath = path
	s.log.Info().Str("path", path).Int("results", len(checkpoint)).Msg("results saved")
	return sub, nil
}

// Reset discards every result and returns the game to its initial state.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = initialState()
	s.counts.Drain()
	s.mu.Unlock()

	s.log.Info().Msg("game reset")
	s.events.Publish(EventResults)
	s.events.Publish(EventState)
}

// Count returns the live ball count.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.BallCount
}

// Counting reports whether an iteration is running.
func (s *Store) Counting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsCounting
}

// Results returns a copy of the submitted results in submission order.
func (s *Store) Results() []IterationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneResults(s.state.IterationsData)
}

// Snapshot returns a consistent copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.IterationsData = cloneResults(s.state.IterationsData)
	return out
}

func cloneResults(in []IterationResult) []IterationResult {
	out := make([]IterationResult, len(in))
	copy(out, in)
	return out
}

func isCheckpoint(n int) bool {
	return n == 3 || n == MaxIterations
}
