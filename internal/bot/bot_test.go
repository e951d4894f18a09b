package bot

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/sueca/internal/deck"
	"github.com/lox/sueca/internal/game"
	"github.com/lox/sueca/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func suit(s deck.Suit) *deck.Suit { return &s }

func view(seat game.Seat, hand string, trump deck.Suit, trick ...game.Play) game.SeatView {
	v := game.SeatView{
		Seat:  seat,
		Hand:  deck.MustParseCards(hand),
		Trump: trump,
		Trick: trick,
	}
	if len(trick) > 0 {
		v.LeadingSuit = suit(trick[0].Card.Suit)
	}
	return v
}

func play(seat game.Seat, s string) game.Play {
	return game.Play{Seat: seat, Card: deck.MustParseCards(s)[0]}
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"greedy", "partner", "random"}, Strategies())

	for _, name := range Strategies() {
		p, err := New(name, randutil.New(1), quietLogger())
		require.NoError(t, err, name)
		assert.NotNil(t, p)
		assert.True(t, IsStrategy(name))
	}

	p, err := New(" Greedy ", randutil.New(1), quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &Greedy{}, p)

	_, err = New("oracle", randutil.New(1), quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greedy, partner, random")
	assert.False(t, IsStrategy("oracle"))
}

func TestRandomOnlyPlaysLegalCards(t *testing.T) {
	t.Parallel()
	r := NewRandom(randutil.New(7), quietLogger())
	v := view(game.Seat2, "AH 2H KS 7C", deck.Spades, play(game.Seat1, "3H"))

	seen := map[deck.Card]bool{}
	for range 200 {
		c := r.ChooseCard(v)
		require.Equal(t, deck.Hearts, c.Suit, "must follow hearts")
		seen[c] = true
	}
	assert.Len(t, seen, 2, "both legal hearts get chosen")
}

func TestRandomUsesInjectedSource(t *testing.T) {
	t.Parallel()
	v := view(game.Seat2, "AH 2H KS 7C", deck.Spades)
	r := NewRandom(&randutil.Scripted{Values: []int{2, 0, 3}}, quietLogger())

	assert.Equal(t, deck.MustParseCards("KS")[0], r.ChooseCard(v))
	assert.Equal(t, deck.MustParseCards("AH")[0], r.ChooseCard(v))
	assert.Equal(t, deck.MustParseCards("7C")[0], r.ChooseCard(v))
}

func TestGreedy(t *testing.T) {
	t.Parallel()
	g := NewGreedy(quietLogger())

	tests := []struct {
		name string
		view game.SeatView
		want string
	}{
		{
			name: "leads strongest trump",
			view: view(game.Seat2, "2S QS AH", deck.Spades),
			want: "QS",
		},
		{
			name: "leads weakest card without trumps",
			view: view(game.Seat2, "KH 3D AC", deck.Spades),
			want: "3D",
		},
		{
			name: "tops the leading suit",
			view: view(game.Seat3, "AH 7H 2H", deck.Spades, play(game.Seat2, "KH")),
			want: "AH",
		},
		{
			name: "discards weakest when beaten",
			view: view(game.Seat3, "KH 2H", deck.Spades, play(game.Seat2, "AH")),
			want: "2H",
		},
		{
			name: "ruffs when void",
			view: view(game.Seat4, "2S 7S KD", deck.Spades, play(game.Seat3, "AH")),
			want: "7S",
		},
		{
			name: "trump only needs to top other trumps",
			view: view(game.Seat4, "QS KD", deck.Spades, play(game.Seat2, "AH"), play(game.Seat3, "2S")),
			want: "QS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, deck.MustParseCards(tt.want)[0], g.ChooseCard(tt.view))
		})
	}
}

func TestPartner(t *testing.T) {
	t.Parallel()
	p := NewPartner(quietLogger())

	tests := []struct {
		name string
		view game.SeatView
		want string
	}{
		{
			name: "leads side ace",
			view: view(game.Seat1, "AS 2H AD", deck.Spades),
			want: "AD",
		},
		{
			name: "leads cheap side card without aces",
			view: view(game.Seat1, "KH 3D 7S", deck.Spades),
			want: "3D",
		},
		{
			name: "does not overtake partner",
			view: view(game.Seat3, "AH 2H", deck.Spades, play(game.Seat1, "7H"), play(game.Seat2, "3H")),
			want: "2H",
		},
		{
			name: "feeds partner on last play",
			view: view(game.Seat4, "7D KC 2C", deck.Spades,
				play(game.Seat1, "AH"), play(game.Seat2, "3S"), play(game.Seat3, "2H")),
			want: "7D",
		},
		{
			name: "takes trick with weakest winner",
			view: view(game.Seat2, "AH 7H 2H", deck.Spades, play(game.Seat1, "KH")),
			want: "7H",
		},
		{
			name: "does not waste trump on empty trick",
			view: view(game.Seat2, "2S 4C", deck.Spades, play(game.Seat1, "3H")),
			want: "4C",
		},
		{
			name: "trumps a valuable trick",
			view: view(game.Seat2, "2S 4C", deck.Spades, play(game.Seat1, "AH")),
			want: "2S",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, deck.MustParseCards(tt.want)[0], p.ChooseCard(tt.view))
		})
	}
}

func TestStrategiesPlayFullRounds(t *testing.T) {
	t.Parallel()
	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			rng := randutil.New(11)
			policy, err := New(name, rng, quietLogger())
			require.NoError(t, err)

			opts := make([]game.EngineOption, 0, game.NumSeats)
			for _, seat := range game.Seats() {
				opts = append(opts, game.WithPolicy(seat, policy))
			}

			fallbacks := 0
			engine := game.NewEngine(rng, quietLogger(), opts...)
			engine.EventBus().Subscribe(game.SubscriberFunc(func(e game.GameEvent) {
				if played, ok := e.(game.CardPlayedEvent); ok && played.Fallback {
					fallbacks++
				}
			}))

			for range 20 {
				outcome, err := engine.Run(context.Background())
				require.NoError(t, err)
				assert.Equal(t, game.TotalPoints, outcome.Scores[game.TeamA]+outcome.Scores[game.TeamB])
			}
			assert.Zero(t, fallbacks, "policies must only choose legal cards")
		})
	}
}
