package game

import (
	"fmt"
	"strings"
)

// GameState is a snapshot of the table: seven tableaus, four foundations and
// the waste. It is built fresh for every request and never mutated by the
// advisor.
type GameState struct {
	Tableaus    [NumTableaus]Tableau
	Foundations [NumFoundations]Foundation
	Waste       Waste
}

// NewGameState returns an empty table with no stock left.
func NewGameState() *GameState {
	return &GameState{}
}

// Copy returns a deep copy of the GameState.
func (gs *GameState) Copy() *GameState {
	cp := &GameState{
		Foundations: gs.Foundations,
		Waste:       gs.Waste,
	}
	for i, t := range gs.Tableaus {
		cp.Tableaus[i] = t.clone()
	}
	return cp
}

// Equal reports whether both snapshots describe the same table.
func (gs *GameState) Equal(o *GameState) bool {
	if gs == nil || o == nil {
		return gs == o
	}
	if gs.Foundations != o.Foundations || gs.Waste != o.Waste {
		return false
	}
	for i := range gs.Tableaus {
		if !gs.Tableaus[i].Equal(o.Tableaus[i]) {
			return false
		}
	}
	return true
}

// CardsInPlay counts the cards that are face up or face down on the table,
// excluding foundations and the undrawn stock.
func (gs *GameState) CardsInPlay() int {
	n := 0
	for _, t := range gs.Tableaus {
		n += t.Hidden() + t.Len()
	}
	if _, ok := gs.Waste.Top(); ok {
		n++
	}
	return n
}

// String renders a compact board: stock and waste, foundations, then the
// hidden counts and top cards of the tableaus.
func (gs *GameState) String() string {
	var sb strings.Builder

	if gs.Waste.PilePresent {
		sb.WriteString("W|")
	} else {
		sb.WriteString("Emp|")
	}
	if c, ok := gs.Waste.Top(); ok {
		sb.WriteString(c.Code())
	} else {
		sb.WriteString("Emp")
	}
	sb.WriteString("    ")
	for _, f := range gs.Foundations {
		if c, ok := f.Peek(); ok {
			sb.WriteString(c.Code() + " ")
		} else {
			sb.WriteString("Emp ")
		}
	}
	sb.WriteString("\n")

	for _, t := range gs.Tableaus {
		fmt.Fprintf(&sb, " %d  ", t.Hidden())
	}
	sb.WriteString("\n")
	for _, t := range gs.Tableaus {
		if c, ok := t.Top(); ok {
			sb.WriteString(c.Code() + " ")
		} else {
			sb.WriteString("Emp ")
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
