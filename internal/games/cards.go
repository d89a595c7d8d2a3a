package games

import "fmt"

// Card represents a playing card with suit and rank.
type Card struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// String returns a human-readable card like "♠A" or "♦10".
func (c Card) String() string {
	return c.Suit + c.Rank
}

// Suits in deck construction order.
var Suits = []string{"♠", "♥", "♦", "♣"}

// Ranks in deck construction order, high to low.
var Ranks = []string{"A", "K", "Q", "J", "10", "9", "8", "7", "6", "5", "4", "3", "2"}

// DeckSize is the number of cards in a fresh deck.
const DeckSize = 52

// SuitCodes maps suit symbols to single-letter codes.
var SuitCodes = map[string]string{
	"♠": "S", "♥": "H", "♦": "D", "♣": "C",
}

// standardCards lists the 52 cards suits-outer, ranks-inner: ♠A, ♠K, ..., ♣2.
func standardCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return cards
}

// Validate reports whether c names a real suit and rank.
func (c Card) Validate() error {
	if _, ok := SuitCodes[c.Suit]; !ok {
		return fmt.Errorf("unknown suit %q", c.Suit)
	}
	for _, r := range Ranks {
		if r == c.Rank {
			return nil
		}
	}
	return fmt.Errorf("unknown rank %q", c.Rank)
}
