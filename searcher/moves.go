package searcher

import (
	"fmt"

	"klondike/game"
)

// moveTableau moves a whole visible run onto another tableau, which turns
// over a face-down card or clears a slot. After each source tableau the
// waste card is tried on that tableau's top card.
func moveTableau(gs *game.GameState) (Suggestion, bool) {
	waste, hasWaste := gs.Waste.Top()

	for a, src := range gs.Tableaus {
		if bottom, ok := src.Bottom(); ok {
			for b, dst := range gs.Tableaus {
				if a == b {
					continue
				}
				top, ok := dst.Top()
				if !ok || !bottom.StacksOn(top) {
					continue
				}
				s := Suggestion{
					Cards:   []game.Card{bottom, top},
					From:    PileTableau,
					To:      PileTableau,
					Tableau: a,
					Target:  b,
				}
				if src.Len() == 1 {
					s.Kind = KindCardToTableau
					s.Message = fmt.Sprintf(msgCardOnCard, bottom, top)
				} else {
					s.Kind = KindRunToTableau
					s.Message = fmt.Sprintf(msgRunOnCard, bottom, top)
				}
				return s, true
			}
		}

		if top, ok := src.Top(); ok && hasWaste && waste.StacksOn(top) {
			return wasteOnto(waste, top, a), true
		}
	}
	return none()
}

// moveToFoundation builds a foundation from a tableau top card or the waste.
// A tableau move that would empty its slot is only suggested when a king can
// take the slot or the next card of the suit is within reach.
func moveToFoundation(gs *game.GameState) (Suggestion, bool) {
	for i, t := range gs.Tableaus {
		card, ok := t.Top()
		if !ok {
			continue
		}
		for _, f := range gs.Foundations {
			if f.IsEmpty() || !f.Accepts(card) {
				continue
			}
			leavesCards := t.Len() > 1 || t.Hidden() != 0
			if leavesCards || kingAvailable(gs) || nextInSuitReachable(gs, card) {
				return Suggestion{
					Kind:    KindToFoundation,
					Cards:   []game.Card{card},
					From:    PileTableau,
					To:      PileFoundation,
					Tableau: i,
					Target:  -1,
					Message: fmt.Sprintf(msgToFoundation, card),
				}, true
			}
		}
	}

	if waste, ok := gs.Waste.Top(); ok {
		for _, f := range gs.Foundations {
			if !f.IsEmpty() && f.Accepts(waste) {
				return Suggestion{
					Kind:    KindToFoundation,
					Cards:   []game.Card{waste},
					From:    PileWaste,
					To:      PileFoundation,
					Tableau: -1,
					Target:  -1,
					Message: fmt.Sprintf(msgToFoundation, waste),
				}, true
			}
		}
	}
	return none()
}

// kingAvailable reports whether a king could fill a freshly emptied slot. A
// king already heading an otherwise empty slot does not count.
func kingAvailable(gs *game.GameState) bool {
	for _, t := range gs.Tableaus {
		if t.Hidden() != 0 && t.ContainsRank(game.King) {
			return true
		}
	}
	waste, ok := gs.Waste.Top()
	return ok && waste.Rank == game.King
}

// nextInSuitReachable reports whether the card after c in its suit is face up
// in a tableau or on the waste.
func nextInSuitReachable(gs *game.GameState, c game.Card) bool {
	if c.Rank == game.King {
		return false
	}
	next := game.Card{Suit: c.Suit, Rank: c.Rank + 1}
	for _, t := range gs.Tableaus {
		if t.Contains(next) {
			return true
		}
	}
	waste, ok := gs.Waste.Top()
	return ok && waste == next
}

// typeStreak moves a top card onto another tableau only when it continues a
// suit: the destination's second card from the top must share its suit.
func typeStreak(gs *game.GameState) (Suggestion, bool) {
	waste, hasWaste := gs.Waste.Top()

	for a, src := range gs.Tableaus {
		if card, ok := src.Top(); ok {
			for b, dst := range gs.Tableaus {
				if a == b || dst.Len() < 2 {
					continue
				}
				top, below := dst.At(dst.Len()-1), dst.At(dst.Len()-2)
				if card.StacksOn(top) && card.Suit == below.Suit {
					return Suggestion{
						Kind:    KindCardToTableau,
						Cards:   []game.Card{card, top},
						From:    PileTableau,
						To:      PileTableau,
						Tableau: a,
						Target:  b,
						Message: fmt.Sprintf(msgTopOnCard, card, top),
					}, true
				}
			}
		}

		if hasWaste && src.Len() >= 2 {
			top, below := src.At(src.Len()-1), src.At(src.Len()-2)
			if waste.StacksOn(top) && waste.Suit == below.Suit {
				return wasteOnto(waste, top, a), true
			}
		}
	}
	return none()
}

// foundationToTableau takes a foundation card back down onto a tableau when
// it then serves as a base: another tableau or the waste holds a card that
// stacks on it.
func foundationToTableau(gs *game.GameState) (Suggestion, bool) {
	waste, hasWaste := gs.Waste.Top()

	for _, f := range gs.Foundations {
		card, ok := f.Peek()
		if !ok {
			continue
		}
		for b, dst := range gs.Tableaus {
			top, ok := dst.Top()
			if !ok || !card.StacksOn(top) {
				continue
			}
			if stacksFromOtherTableau(gs, card, b) || (hasWaste && waste.StacksOn(card)) {
				return Suggestion{
					Kind:    KindFoundationToTableau,
					Cards:   []game.Card{card, top},
					From:    PileFoundation,
					To:      PileTableau,
					Tableau: -1,
					Target:  b,
					Message: fmt.Sprintf(msgFromFoundation, card, top),
				}, true
			}
		}
	}
	return none()
}

// stacksFromOtherTableau reports whether any visible card outside tableau
// skip could be placed on base.
func stacksFromOtherTableau(gs *game.GameState, base game.Card, skip int) bool {
	for i, t := range gs.Tableaus {
		if i == skip {
			continue
		}
		for j := 0; j < t.Len(); j++ {
			if t.At(j).StacksOn(base) {
				return true
			}
		}
	}
	return false
}

func wasteOnto(waste, top game.Card, target int) Suggestion {
	return Suggestion{
		Kind:    KindWasteToTableau,
		Cards:   []game.Card{waste, top},
		From:    PileWaste,
		To:      PileTableau,
		Tableau: -1,
		Target:  target,
		Message: fmt.Sprintf(msgTopOnCard, waste, top),
	}
}
