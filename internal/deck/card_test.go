package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected Card
		wantErr  bool
	}{
		{name: "suit then rank", input: "SA", expected: Card{Suit: Spades, Rank: Ace}},
		{name: "rank then suit", input: "AS", expected: Card{Suit: Spades, Rank: Ace}},
		{name: "lower case", input: "h7", expected: Card{Suit: Hearts, Rank: Seven}},
		{name: "surrounding spaces", input: "  qd ", expected: Card{Suit: Diamonds, Rank: Queen}},
		{name: "glyph suit", input: "K♣", expected: Card{Suit: Clubs, Rank: King}},
		{name: "glyph first", input: "♥2", expected: Card{Suit: Hearts, Rank: Two}},
		{name: "eight is not in the deck", input: "8s", wantErr: true},
		{name: "ten is not in the deck", input: "Ts", wantErr: true},
		{name: "unknown suit", input: "Ax", wantErr: true},
		{name: "too long", input: "ASX", wantErr: true},
		{name: "single rune", input: "A", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	cards, err := ParseCards("AS, 7h KD\tqc")
	require.NoError(t, err)
	assert.Equal(t, []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Hearts, Rank: Seven},
		{Suit: Diamonds, Rank: King},
		{Suit: Clubs, Rank: Queen},
	}, cards)

	_, err = ParseCards("AS 9h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card 2")
}

func TestCardFormatting(t *testing.T) {
	t.Parallel()
	c := NewCard(Spades, Ace)
	assert.Equal(t, "A♠", c.String())
	assert.Equal(t, "AS", c.Code())
	assert.Equal(t, "Ace of Spades", c.Name())

	seven := NewCard(Hearts, Seven)
	assert.Equal(t, "7♥", seven.String())
	assert.Equal(t, "7 of Hearts", seven.Name())
	assert.True(t, seven.IsRed())
	assert.False(t, c.IsRed())

	for _, card := range Build() {
		parsed, err := ParseCard(card.Code())
		require.NoError(t, err)
		assert.Equal(t, card, parsed)
	}
}

func TestRankOrderAndPoints(t *testing.T) {
	t.Parallel()
	order := Ranks()
	require.Len(t, order, NumRanks)
	for i := 0; i < len(order)-1; i++ {
		assert.True(t, order[i].Beats(order[i+1]), "%s should beat %s", order[i], order[i+1])
		assert.False(t, order[i+1].Beats(order[i]))
	}

	expected := map[Rank]int{Ace: 11, Seven: 10, King: 4, Jack: 3, Queen: 2, Six: 0, Five: 0, Four: 0, Three: 0, Two: 0}
	for rank, points := range expected {
		assert.Equal(t, points, rank.Points(), "points for %s", rank)
	}

	assert.Equal(t, 120, TotalPoints(Build()))
}
