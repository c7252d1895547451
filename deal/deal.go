// Package deal shuffles and deals random Klondike games.
package deal

import (
	"klondike/game"
	"klondike/placement"

	"golang.org/x/exp/rand"
)

// Deck returns the 52 cards ordered by suit, then rank.
func Deck() []game.Card {
	deck := make([]game.Card, 0, game.NumCards)
	for _, suit := range game.Suits {
		for rank := game.Ace; rank <= game.King; rank++ {
			deck = append(deck, game.Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Deal is a shuffled deck laid out for Klondike. Tableau i holds i+1 cards,
// the last of which is face up; the rest of the deck forms the stock.
type Deal struct {
	Seed     uint64
	Tableaus [game.NumTableaus][]game.Card
	Stock    []game.Card
}

func New(seed uint64) *Deal {
	deck := Deck()
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	d := &Deal{Seed: seed}
	next := 0
	for i := range d.Tableaus {
		d.Tableaus[i] = deck[next : next+i+1 : next+i+1]
		next += i + 1
	}
	d.Stock = deck[next:]
	return d
}

// Opening is the table as the player first sees it.
func (d *Deal) Opening() (placement.Input, error) {
	return d.Position(0)
}

// Position is the opening table after draws cards have been turned from the
// stock one at a time; the last drawn card shows on the waste.
func (d *Deal) Position(draws int) (placement.Input, error) {
	draws = min(max(draws, 0), len(d.Stock))

	b := placement.NewBuilder().SetWastePile(draws < len(d.Stock))
	if draws > 0 {
		if err := b.SetWaste(d.Stock[draws-1].Code()); err != nil {
			return placement.Input{}, err
		}
	}
	for i, cards := range d.Tableaus {
		if err := b.SetHidden(i, len(cards)-1); err != nil {
			return placement.Input{}, err
		}
		if err := b.PushTop(i, cards[len(cards)-1].Code()); err != nil {
			return placement.Input{}, err
		}
	}
	return b.Input(), nil
}
