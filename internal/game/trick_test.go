package game

import (
	"testing"

	"github.com/lox/sueca/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suitPtr(s deck.Suit) *deck.Suit { return &s }

func TestIsLegalPlay(t *testing.T) {
	t.Parallel()
	hand := cards("AH 2H KS 7C")

	t.Run("empty trick allows anything", func(t *testing.T) {
		for _, c := range hand {
			assert.True(t, IsLegalPlay(hand, nil, c), "%s", c)
		}
	})

	t.Run("must follow when holding the suit", func(t *testing.T) {
		led := suitPtr(deck.Hearts)
		assert.True(t, IsLegalPlay(hand, led, card("AH")))
		assert.True(t, IsLegalPlay(hand, led, card("2H")))
		assert.False(t, IsLegalPlay(hand, led, card("KS")))
		assert.False(t, IsLegalPlay(hand, led, card("7C")))
		assert.Equal(t, cards("AH 2H"), LegalPlays(hand, led))
	})

	t.Run("void in leading suit allows anything", func(t *testing.T) {
		led := suitPtr(deck.Diamonds)
		for _, c := range hand {
			assert.True(t, IsLegalPlay(hand, led, c), "%s", c)
		}
		assert.Equal(t, hand, LegalPlays(hand, led))
	})
}

func permutations(plays []Play) [][]Play {
	if len(plays) <= 1 {
		return [][]Play{append([]Play(nil), plays...)}
	}
	var out [][]Play
	for i := range plays {
		rest := make([]Play, 0, len(plays)-1)
		rest = append(rest, plays[:i]...)
		rest = append(rest, plays[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]Play{plays[i]}, p...))
		}
	}
	return out
}

// reseat assigns seats in play order so each permutation is a valid trick.
func reseat(plays []Play) []Play {
	out := make([]Play, len(plays))
	for i, p := range plays {
		out[i] = Play{Seat: Seat(i), Card: p.Card}
	}
	return out
}

func TestResolveTrickStrongestTrumpWins(t *testing.T) {
	t.Parallel()
	base := []Play{
		{Card: card("2S")},
		{Card: card("QS")},
		{Card: card("AD")},
		{Card: card("7D")},
	}

	for _, perm := range permutations(base) {
		plays := reseat(perm)
		result, err := ResolveTrick(plays, deck.Spades)
		require.NoError(t, err)
		assert.Equal(t, card("QS"), result.WinningCard, "order %v", perm)
		assert.Equal(t, 0+2+11+10, result.Points)
		assert.Equal(t, plays[0].Card.Suit, result.LeadingSuit)
	}
}

func TestResolveTrickLeadingSuitWithoutTrump(t *testing.T) {
	t.Parallel()
	plays := []Play{
		{Seat: Seat2, Card: card("KH")},
		{Seat: Seat3, Card: card("AC")},
		{Seat: Seat4, Card: card("7H")},
		{Seat: Seat1, Card: card("QH")},
	}
	result, err := ResolveTrick(plays, deck.Spades)
	require.NoError(t, err)
	assert.Equal(t, Seat4, result.Winner)
	assert.Equal(t, card("7H"), result.WinningCard)
	assert.Equal(t, deck.Hearts, result.LeadingSuit)
	assert.Equal(t, Seat2, result.Leader())
	assert.Equal(t, 4+11+10+2, result.Points)
}

func TestTrickPoints(t *testing.T) {
	t.Parallel()
	plays := []Play{
		{Seat: Seat1, Card: card("AC")},
		{Seat: Seat2, Card: card("KD")},
		{Seat: Seat3, Card: card("QH")},
		{Seat: Seat4, Card: card("2S")},
	}
	result, err := ResolveTrick(plays, deck.Hearts)
	require.NoError(t, err)
	assert.Equal(t, 17, result.Points)
	assert.Equal(t, Seat3, result.Winner, "lone trump takes the trick")
}

func TestResolveTrickExampleScenario(t *testing.T) {
	t.Parallel()
	plays := []Play{
		{Seat: Seat1, Card: card("7S")},
		{Seat: Seat2, Card: card("2D")},
		{Seat: Seat3, Card: card("AD")},
		{Seat: Seat4, Card: card("KD")},
	}
	result, err := ResolveTrick(plays, deck.Spades)
	require.NoError(t, err)
	assert.Equal(t, Seat1, result.Winner)
	assert.Equal(t, 25, result.Points)
}

func TestResolveTrickIncomplete(t *testing.T) {
	t.Parallel()
	_, err := ResolveTrick([]Play{{Seat: Seat1, Card: card("AS")}}, deck.Hearts)
	assert.ErrorIs(t, err, ErrIncompleteTrick)

	_, err = ResolveTrick(nil, deck.Hearts)
	assert.ErrorIs(t, err, ErrIncompleteTrick)
}

func TestBeats(t *testing.T) {
	t.Parallel()
	trick := []Play{
		{Seat: Seat1, Card: card("KH")},
		{Seat: Seat2, Card: card("AH")},
	}

	w, ok := WinningPlay(trick, deck.Clubs)
	require.True(t, ok)
	assert.Equal(t, Seat2, w.Seat)

	assert.True(t, Beats(card("2C"), trick, deck.Clubs), "any trump beats non-trump")
	assert.False(t, Beats(card("7H"), trick, deck.Clubs), "seven is below ace")
	assert.False(t, Beats(card("AS"), trick, deck.Clubs), "off-suit never wins")
	assert.True(t, Beats(card("2S"), nil, deck.Clubs))

	_, ok = WinningPlay(nil, deck.Clubs)
	assert.False(t, ok)
}
