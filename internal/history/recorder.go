package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/sueca/internal/game"
)

// Recorder is a game.EventSubscriber that writes each completed round to
// <dir>/<round id>.toml.
type Recorder struct {
	dir     string
	logger  *log.Logger
	clock   quartz.Clock
	players [game.NumSeats]string

	mu     sync.Mutex
	starts map[string]game.Snapshot
	paths  []string
	err    error
}

// RecorderOption configures a Recorder
type RecorderOption func(*Recorder)

// WithClock sets the clock used to timestamp records
func WithClock(clock quartz.Clock) RecorderOption {
	return func(r *Recorder) { r.clock = clock }
}

// WithPlayers sets the player names stored in each record
func WithPlayers(names [game.NumSeats]string) RecorderOption {
	return func(r *Recorder) { r.players = names }
}

// NewRecorder creates a recorder writing into dir, which is created on demand
func NewRecorder(dir string, logger *log.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		dir:    dir,
		logger: logger.WithPrefix("history"),
		clock:  quartz.NewReal(),
		starts: make(map[string]game.Snapshot),
	}
	for i, seat := range game.Seats() {
		r.players[i] = seat.String()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		// the engine holds one round at a time, so earlier deals were abandoned
		r.mu.Lock()
		clear(r.starts)
		r.starts[e.RoundID] = e.Snapshot
		r.mu.Unlock()
	case game.RoundEndEvent:
		if err := r.write(e); err != nil {
			r.logger.Error("Failed to write round record", "round", e.RoundID, "error", err)
			r.mu.Lock()
			r.err = err
			r.mu.Unlock()
		}
	}
}

func (r *Recorder) write(end game.RoundEndEvent) error {
	r.mu.Lock()
	start, ok := r.starts[end.RoundID]
	delete(r.starts, end.RoundID)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("no deal recorded for round %s", end.RoundID)
	}

	rec := NewRecord(start, end, r.players, r.clock.Now())
	data, err := EncodeToBytes(&rec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	path := filepath.Join(r.dir, filepath.Base(end.RoundID)+".toml")
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return err
	}

	r.logger.Info("Round recorded", "round", end.RoundID, "path", path)
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	return nil
}

// Paths returns the files written so far
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Err returns the most recent write error, if any
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
