package games

import (
	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

// Engine actions understood by RunPokerEngine.
const (
	ActionBuildDeck  = "build_deck"
	ActionDraw       = "draw"
	ActionDeal       = "deal"
	ActionPickWinner = "pick_winner"
)

// PokerEngineRequest is one call into the poker engine bridge.
type PokerEngineRequest struct {
	Action     string   `json:"action"`
	Deck       []Card   `json:"deck,omitempty"`
	Contenders []string `json:"contenders,omitempty"`
}

// BuildDeckResult answers build_deck.
type BuildDeckResult struct {
	Deck []Card `json:"deck"`
}

// DrawResult answers draw: the drawn card and what is left of the supplied deck.
type DrawResult struct {
	Card Card   `json:"card"`
	Deck []Card `json:"deck"`
}

// PickWinnerResult answers pick_winner.
type PickWinnerResult struct {
	WinnerID string `json:"winnerId"`
}

// RunPokerEngine executes a single engine action.
//
//	build_deck   -> {deck}
//	draw         -> {card, deck} drawing from the supplied deck
//	deal         -> {hand, remaining} (a Hand) from a fresh deck
//	pick_winner  -> {winnerId}
func RunPokerEngine(req PokerEngineRequest, rng RNG) (any, error) {
	switch req.Action {
	case ActionBuildDeck:
		return BuildDeckResult{Deck: NewDeck(rng).Cards()}, nil

	case ActionDraw:
		deck, err := NewDeckFrom(req.Deck, rng)
		if err != nil {
			return nil, err
		}
		c, err := deck.Draw()
		if err != nil {
			return nil, err
		}
		return DrawResult{Card: c, Deck: deck.Cards()}, nil

	case ActionDeal:
		h, err := DealHand(rng)
		if err != nil {
			return nil, err
		}
		return h, nil

	case ActionPickWinner:
		winner, err := PickWinner(req.Contenders, rng)
		if err != nil {
			return nil, err
		}
		return PickWinnerResult{WinnerID: winner}, nil

	case "":
		return nil, kernel.Malformed("action", "missing")
	default:
		return nil, kernel.Invalid("action", "unknown action %q", req.Action)
	}
}
