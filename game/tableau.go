package game

import (
	"errors"
	"fmt"
	"slices"
)

var ErrBrokenRun = errors.New("visible cards do not form an alternating descending run")

// Tableau is one of the seven build piles. Face-down cards are tracked by
// count only. visible[0] is the card lying on the hidden stack and the last
// element is the movable top card.
type Tableau struct {
	hidden  int
	visible []Card
}

// NewTableau builds a tableau from a hidden count and a bottom-first run.
// The run is copied.
func NewTableau(hidden int, visible []Card) (Tableau, error) {
	if hidden < 0 {
		return Tableau{}, fmt.Errorf("negative hidden count %d", hidden)
	}
	t := Tableau{hidden: hidden}
	for i, c := range visible {
		if !c.Valid() {
			return Tableau{}, fmt.Errorf("%w at position %d", ErrInvalidCard, i)
		}
		if !t.Push(c) {
			return Tableau{}, fmt.Errorf("%w: %s cannot be placed on %s", ErrBrokenRun, c, t.visible[len(t.visible)-1])
		}
	}
	return t, nil
}

// MustTableau is NewTableau for fixtures known to be valid.
func MustTableau(hidden int, visible ...Card) Tableau {
	t, err := NewTableau(hidden, visible)
	if err != nil {
		panic(err)
	}
	return t
}

// Push places c on top of the run if it stacks there and reports whether it
// did. Any card may start an empty run.
func (t *Tableau) Push(c Card) bool {
	if len(t.visible) > 0 && !c.StacksOn(t.visible[len(t.visible)-1]) {
		return false
	}
	t.visible = append(t.visible, c)
	return true
}

func (t Tableau) Hidden() int {
	return t.hidden
}

// Len returns the number of visible cards.
func (t Tableau) Len() int {
	return len(t.visible)
}

// At returns the visible card at position i, counted from the bottom.
func (t Tableau) At(i int) Card {
	return t.visible[i]
}

// Visible returns a copy of the visible run, bottom first.
func (t Tableau) Visible() []Card {
	return slices.Clone(t.visible)
}

func (t Tableau) HasVisible() bool {
	return len(t.visible) > 0
}

// IsEmpty reports whether the slot holds no cards at all.
func (t Tableau) IsEmpty() bool {
	return t.hidden == 0 && len(t.visible) == 0
}

// Top returns the movable card at the end of the run.
func (t Tableau) Top() (Card, bool) {
	if len(t.visible) == 0 {
		return Card{}, false
	}
	return t.visible[len(t.visible)-1], true
}

// Bottom returns the visible card lying directly on the hidden stack.
func (t Tableau) Bottom() (Card, bool) {
	if len(t.visible) == 0 {
		return Card{}, false
	}
	return t.visible[0], true
}

// Contains reports whether c is part of the visible run.
func (t Tableau) Contains(c Card) bool {
	return slices.Contains(t.visible, c)
}

// ContainsRank reports whether a card of rank r is part of the visible run.
func (t Tableau) ContainsRank(r Rank) bool {
	return slices.ContainsFunc(t.visible, func(c Card) bool { return c.Rank == r })
}

func (t Tableau) Equal(o Tableau) bool {
	return t.hidden == o.hidden && slices.Equal(t.visible, o.visible)
}

func (t Tableau) clone() Tableau {
	return Tableau{hidden: t.hidden, visible: slices.Clone(t.visible)}
}
