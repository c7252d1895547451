package placement

import (
	"errors"
	"fmt"

	"klondike/game"
	"klondike/utils"
)

var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrInvalidSlotIndex = errors.New("invalid slot index")
)

// Translate converts a snapshot into a new GameState. The result shares no
// memory with in.
func Translate(in Input) (*game.GameState, error) {
	if len(in.Tableaus) > game.NumTableaus {
		return nil, fmt.Errorf("%w: %d tableaus supplied, at most %d", ErrInvalidSlotIndex, len(in.Tableaus), game.NumTableaus)
	}
	if len(in.Foundations) > game.NumFoundations {
		return nil, fmt.Errorf("%w: %d foundations supplied, at most %d", ErrInvalidSlotIndex, len(in.Foundations), game.NumFoundations)
	}

	gs := game.NewGameState()

	// Waste
	var top game.Card
	if in.Waste != "" {
		c, err := parseCard(in.Waste)
		if err != nil {
			return nil, fmt.Errorf("waste: %w", err)
		}
		top = c
	}
	gs.Waste = game.NewWaste(in.WastePile, top)

	// Foundations
	seen := map[game.Suit]int{}
	for i, code := range in.Foundations {
		if code == "" {
			continue
		}
		c, err := parseCard(code)
		if err != nil {
			return nil, fmt.Errorf("foundation %d: %w", i+1, err)
		}
		if prev, ok := seen[c.Suit]; ok {
			return nil, fmt.Errorf("%w: foundation %d repeats the %s suit of foundation %d", ErrMalformedInput, i+1, c.Suit, prev)
		}
		seen[c.Suit] = i + 1
		gs.Foundations[i] = game.NewFoundation(c)
	}

	// Tableaus
	for i, ti := range in.Tableaus {
		t, err := translateTableau(ti)
		if err != nil {
			return nil, fmt.Errorf("tableau %d: %w", i+1, err)
		}
		gs.Tableaus[i] = t
	}

	return gs, nil
}

func translateTableau(ti TableauInput) (game.Tableau, error) {
	if ti.Hidden < 0 || ti.Hidden > game.MaxHidden {
		return game.Tableau{}, fmt.Errorf("%w: hidden count %d outside 0..%d", ErrMalformedInput, ti.Hidden, game.MaxHidden)
	}
	codes := ti.Cards
	if ti.TopFirst {
		codes = utils.Reversed(codes)
	}
	cards := make([]game.Card, 0, len(codes))
	for _, code := range codes {
		c, err := parseCard(code)
		if err != nil {
			return game.Tableau{}, err
		}
		cards = append(cards, c)
	}
	t, err := game.NewTableau(ti.Hidden, cards)
	if err != nil {
		return game.Tableau{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return t, nil
}

func parseCard(code string) (game.Card, error) {
	c, err := game.ParseCard(code)
	if err != nil {
		return game.Card{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return c, nil
}
