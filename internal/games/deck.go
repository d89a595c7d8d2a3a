package games

import (
	"math/rand/v2"

	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

// RNG abstracts uniform integer generation so tests can force draw order.
type RNG interface {
	// Intn returns a uniform int in [0, n). n is always positive.
	Intn(n int) int
}

// StdRNG delegates to math/rand/v2, which is auto-seeded.
type StdRNG struct{}

func (StdRNG) Intn(n int) int { return rand.IntN(n) }

// Deck is an ordered, duplicate-free set of cards that only shrinks. Draw is the
// only way cards leave it.
type Deck struct {
	cards []Card
	rng   RNG
}

// NewDeck returns a fresh 52-card deck in construction order.
func NewDeck(rng RNG) *Deck {
	if rng == nil {
		rng = StdRNG{}
	}
	return &Deck{cards: standardCards(), rng: rng}
}

// NewDeckFrom builds a deck from an existing card list, e.g. the remainder of a
// deck handed back by a caller. Unknown or repeated cards are MalformedInput.
func NewDeckFrom(cards []Card, rng RNG) (*Deck, error) {
	if rng == nil {
		rng = StdRNG{}
	}
	seen := make(map[Card]bool, len(cards))
	own := make([]Card, len(cards))
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, kernel.Malformed("deck", "card %d: %v", i, err)
		}
		if seen[c] {
			return nil, kernel.Malformed("deck", "card %d: duplicate %s", i, c)
		}
		seen[c] = true
		own[i] = c
	}
	return &Deck{cards: own, rng: rng}, nil
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int { return len(d.cards) }

// Cards returns a copy of the remaining cards in order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Draw removes and returns a uniformly chosen card. The remaining cards keep
// their relative order.
func (d *Deck) Draw() (Card, error) {
	k := len(d.cards)
	if k == 0 {
		return Card{}, &kernel.Error{Kind: kernel.KindEmptyDeck, Message: "no cards remaining"}
	}
	idx := d.rng.Intn(k)
	if idx < 0 || idx >= k {
		return Card{}, &kernel.Error{Kind: kernel.KindInternal, Message: "rng returned index out of range"}
	}
	c := d.cards[idx]
	d.cards = append(d.cards[:idx], d.cards[idx+1:]...)
	return c, nil
}

// DrawN draws n cards in order.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n < 0 {
		return nil, kernel.Invalid("n", "must not be negative, got %d", n)
	}
	out := make([]Card, 0, n)
	for range n {
		c, err := d.Draw()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
