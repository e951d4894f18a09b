package deck

import "sort"

// SortHand returns a sorted copy of cards: suits in deck order rotated so the
// trump suit comes first, then strongest rank first within each suit.
func SortHand(cards []Card, trump Suit) []Card {
	sorted := append([]Card(nil), cards...)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := suitOffset(sorted[i].Suit, trump), suitOffset(sorted[j].Suit, trump)
		if si != sj {
			return si < sj
		}
		return sorted[i].Rank > sorted[j].Rank
	})
	return sorted
}

// SuitGroup is a run of cards of one suit
type SuitGroup struct {
	Suit  Suit
	Cards []Card
}

// GroupBySuit sorts cards with SortHand and splits them into per-suit groups,
// skipping empty suits.
func GroupBySuit(cards []Card, trump Suit) []SuitGroup {
	var groups []SuitGroup
	for _, c := range SortHand(cards, trump) {
		if n := len(groups); n > 0 && groups[n-1].Suit == c.Suit {
			groups[n-1].Cards = append(groups[n-1].Cards, c)
			continue
		}
		groups = append(groups, SuitGroup{Suit: c.Suit, Cards: []Card{c}})
	}
	return groups
}

// Contains reports whether cards holds c
func Contains(cards []Card, c Card) bool {
	return IndexOf(cards, c) >= 0
}

// IndexOf returns the position of c in cards, or -1
func IndexOf(cards []Card, c Card) int {
	for i, card := range cards {
		if card == c {
			return i
		}
	}
	return -1
}

// HasSuit reports whether any card in cards is of suit s
func HasSuit(cards []Card, s Suit) bool {
	for _, c := range cards {
		if c.Suit == s {
			return true
		}
	}
	return false
}

func suitOffset(s, trump Suit) int {
	return (int(s) - int(trump) + NumSuits) % NumSuits
}
