package history

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func playRecordedRound(t *testing.T, dir string, seed int64) (*Recorder, game.Outcome, *quartz.Mock) {
	t.Helper()
	mClock := quartz.NewMock(t)
	recorder := NewRecorder(dir, quietLogger(),
		WithClock(mClock),
		WithPlayers([game.NumSeats]string{"Ana", "Bot 2", "Bot 3", "Bot 4"}))

	opts := []game.EngineOption{game.WithRoundIDs(func() string { return "r-test" })}
	for _, seat := range game.Seats() {
		opts = append(opts, game.WithPolicy(seat, game.FirstLegal))
	}
	engine := game.NewEngine(randutil.New(seed), quietLogger(), opts...)
	engine.EventBus().Subscribe(recorder)

	outcome, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, recorder.Err())
	return recorder, outcome, mClock
}

func TestRecorderWritesRoundFile(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "rounds")
	recorder, outcome, mClock := playRecordedRound(t, dir, 17)

	path := filepath.Join(dir, "r-test.toml")
	assert.Equal(t, []string{path}, recorder.Paths())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `variant = "sueca"`)
	assert.Contains(t, string(raw), "[[tricks]]")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	rec, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "r-test", rec.Round)
	assert.Equal(t, []string{"Ana", "Bot 2", "Bot 3", "Bot 4"}, rec.Players)
	assert.True(t, mClock.Now().Truncate(time.Second).Equal(rec.Time), "record time %s", rec.Time)
	assert.Len(t, rec.Tricks, game.TricksPerRound)
	assert.Equal(t, []int{outcome.Scores[game.TeamA], outcome.Scores[game.TeamB]}, rec.Scores)
	assert.Equal(t, outcome.Result.String(), rec.Result)
	assert.Equal(t, rec.TrumpCard, rec.Hands[0][0], "trump card is the first card dealt to seat 1")

	replayed, err := Replay(rec)
	require.NoError(t, err)
	assert.Equal(t, outcome, replayed)
}

func TestRecorderForgetsAbandonedRounds(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	recorder := NewRecorder(dir, quietLogger())

	ids := []string{"a-1", "a-2", "a-3"}
	next := 0
	engine := game.NewEngine(randutil.New(9), quietLogger(),
		game.WithBots(game.FirstLegal),
		game.WithPolicy(game.HumanSeat, game.FirstLegal),
		game.WithRoundIDs(func() string { next++; return ids[next-1] }))
	engine.EventBus().Subscribe(recorder)

	require.NoError(t, engine.StartRound())
	require.NoError(t, engine.StartRound())
	assert.Len(t, recorder.starts, 1)

	_, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, recorder.Err())
	assert.Empty(t, recorder.starts)
	assert.Equal(t, []string{filepath.Join(dir, "a-2.toml")}, recorder.Paths())
}

func TestReplayDetectsTampering(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, _, _ = playRecordedRound(t, dir, 3)

	rec, err := Load(filepath.Join(dir, "r-test.toml"))
	require.NoError(t, err)

	points := *rec
	points.Tricks = append([]TrickRecord(nil), rec.Tricks...)
	points.Tricks[0].Points++
	_, err = Replay(&points)
	assert.ErrorContains(t, err, "trick 1")

	scores := *rec
	scores.Scores = []int{120, 0}
	if rec.Scores[0] != 120 {
		_, err = Replay(&scores)
		assert.ErrorContains(t, err, "recorded scores")
	}

	result := *rec
	result.Result = game.ResultDraw.String()
	if rec.Result == result.Result {
		result.Result = game.ResultTeamB.String()
	}
	_, err = Replay(&result)
	assert.ErrorContains(t, err, "recorded result")

	gamePoints := *rec
	gamePoints.GamePoints = rec.GamePoints + 1
	_, err = Replay(&gamePoints)
	assert.ErrorContains(t, err, "game points")

	short := *rec
	short.Tricks = rec.Tricks[:5]
	_, err = Replay(&short)
	assert.ErrorContains(t, err, "record ends after 5 tricks")

	swapped := *rec
	swapped.Tricks = append([]TrickRecord(nil), rec.Tricks...)
	cards := append([]string(nil), swapped.Tricks[0].Cards...)
	cards[0], cards[1] = cards[1], cards[0]
	swapped.Tricks[0].Cards = cards
	_, err = Replay(&swapped)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, _, _ = playRecordedRound(t, dir, 5)

	rec, err := Load(filepath.Join(dir, "r-test.toml"))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, Render(&out, rec))
	text := out.String()

	assert.Contains(t, text, "Round r-test")
	assert.Contains(t, text, "Trump: ")
	assert.Contains(t, text, "Ana:")
	assert.Contains(t, text, " 1. Ana ")
	assert.Contains(t, text, "10. ")
	assert.Contains(t, text, "Team A: ")
	assert.Contains(t, text, rec.Result)
}

func TestLoadRejectsUnknownContent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(other, []byte("variant = \"nlhe\"\nround = \"x\"\n"), 0o644))
	_, err := Load(other)
	assert.ErrorContains(t, err, "unsupported variant")

	extra := filepath.Join(dir, "extra.toml")
	require.NoError(t, os.WriteFile(extra, []byte("variant = \"sueca\"\nbogus = 1\n"), 0o644))
	_, err = Load(extra)
	assert.ErrorContains(t, err, "unknown keys")

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestRecorderWithoutDeal(t *testing.T) {
	t.Parallel()
	recorder := NewRecorder(t.TempDir(), quietLogger())
	recorder.OnEvent(game.NewRoundEndEvent(game.NewOutcome([2]int{60, 60}), nil, game.Snapshot{RoundID: "orphan"}))
	assert.ErrorContains(t, recorder.Err(), "no deal recorded")
	assert.Empty(t, recorder.Paths())
}

func TestEncodeNil(t *testing.T) {
	t.Parallel()
	_, err := EncodeToBytes(nil)
	assert.Error(t, err)
}
