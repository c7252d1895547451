package placement

import (
	"fmt"
	"slices"

	"klondike/game"
	"klondike/utils"
)

// Builder assembles an Input one field at a time, the way a manual entry form
// fills it in. Every card code is validated as it is entered.
type Builder struct {
	in Input
}

func NewBuilder() *Builder {
	return &Builder{in: Input{Tableaus: make([]TableauInput, game.NumTableaus)}}
}

func (b *Builder) SetWastePile(present bool) *Builder {
	b.in.WastePile = present
	return b
}

// SetWaste replaces the visible waste card.
func (b *Builder) SetWaste(code string) error {
	c, err := parseCard(code)
	if err != nil {
		return fmt.Errorf("waste: %w", err)
	}
	b.in.Waste = c.Code()
	return nil
}

// PutFoundation records code as the top of its suit's foundation. A slot
// already holding that suit is overwritten, otherwise the first free slot is
// taken.
func (b *Builder) PutFoundation(code string) error {
	c, err := parseCard(code)
	if err != nil {
		return fmt.Errorf("foundation: %w", err)
	}
	for i, existing := range b.in.Foundations {
		if existing == "" {
			continue
		}
		if prev, err := game.ParseCard(existing); err == nil && prev.Suit == c.Suit {
			b.in.Foundations[i] = c.Code()
			return nil
		}
	}
	if i := utils.FindIndex(b.in.Foundations, ""); i >= 0 {
		b.in.Foundations[i] = c.Code()
		return nil
	}
	if len(b.in.Foundations) == game.NumFoundations {
		return fmt.Errorf("%w: all %d foundations are taken", ErrInvalidSlotIndex, game.NumFoundations)
	}
	b.in.Foundations = append(b.in.Foundations, c.Code())
	return nil
}

// PushTop adds code on top of tableau i's visible run.
func (b *Builder) PushTop(i int, code string) error {
	t, c, err := b.tableau(i, code)
	if err != nil {
		return err
	}
	t.Cards = append(t.Cards, c.Code())
	return nil
}

// PushBottom inserts code beneath tableau i's visible run, directly on the
// hidden cards.
func (b *Builder) PushBottom(i int, code string) error {
	t, c, err := b.tableau(i, code)
	if err != nil {
		return err
	}
	t.Cards = slices.Insert(t.Cards, 0, c.Code())
	return nil
}

// SetHidden sets the face-down count of tableau i.
func (b *Builder) SetHidden(i, hidden int) error {
	if i < 0 || i >= game.NumTableaus {
		return fmt.Errorf("%w: tableau %d", ErrInvalidSlotIndex, i+1)
	}
	if hidden < 0 || hidden > game.MaxHidden {
		return fmt.Errorf("%w: hidden count %d outside 0..%d", ErrMalformedInput, hidden, game.MaxHidden)
	}
	b.in.Tableaus[i].Hidden = hidden
	return nil
}

// Input returns a copy of the assembled snapshot.
func (b *Builder) Input() Input {
	out := Input{
		WastePile:   b.in.WastePile,
		Waste:       b.in.Waste,
		Foundations: slices.Clone(b.in.Foundations),
		Tableaus:    make([]TableauInput, len(b.in.Tableaus)),
	}
	for i, t := range b.in.Tableaus {
		out.Tableaus[i] = TableauInput{Hidden: t.Hidden, Cards: slices.Clone(t.Cards)}
	}
	return out
}

func (b *Builder) tableau(i int, code string) (*TableauInput, game.Card, error) {
	if i < 0 || i >= game.NumTableaus {
		return nil, game.Card{}, fmt.Errorf("%w: tableau %d", ErrInvalidSlotIndex, i+1)
	}
	c, err := parseCard(code)
	if err != nil {
		return nil, game.Card{}, fmt.Errorf("tableau %d: %w", i+1, err)
	}
	return &b.in.Tableaus[i], c, nil
}
