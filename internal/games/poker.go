package games

import (
	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

// HoleCards is the number of cards dealt to each player.
const HoleCards = 2

// Hand is the result of one fresh-deck deal.
type Hand struct {
	Hand      []Card `json:"hand"`
	Remaining int    `json:"remaining"`
}

// DealHand builds a fresh deck and draws two cards from it.
func DealHand(rng RNG) (Hand, error) {
	deck := NewDeck(rng)
	cards, err := deck.DrawN(HoleCards)
	if err != nil {
		return Hand{}, err
	}
	return Hand{Hand: cards, Remaining: deck.Len()}, nil
}

// Seat is a player with their hole cards.
type Seat struct {
	UserID string `json:"userId"`
	Hand   []Card `json:"hand"`
}

// DealHands deals two hole cards to each player, in seat order, from one fresh deck.
func DealHands(players []string, rng RNG) ([]Seat, int, error) {
	if len(players)*HoleCards > DeckSize {
		return nil, 0, kernel.Invalid("players", "%d players need more than %d cards", len(players), DeckSize)
	}
	deck := NewDeck(rng)
	seats := make([]Seat, len(players))
	for i, p := range players {
		cards, err := deck.DrawN(HoleCards)
		if err != nil {
			return nil, 0, err
		}
		seats[i] = Seat{UserID: p, Hand: cards}
	}
	return seats, deck.Len(), nil
}

// PickWinner chooses one contender uniformly at random.
func PickWinner(contenders []string, rng RNG) (string, error) {
	if len(contenders) == 0 {
		return "", kernel.Invalid("contenders", "at least one contender is required")
	}
	if rng == nil {
		rng = StdRNG{}
	}
	return contenders[rng.Intn(len(contenders))], nil
}
