package searcher

import (
	"fmt"

	"klondike/game"
)

// checkWin fires when every foundation is topped by a king.
func checkWin(gs *game.GameState) (Suggestion, bool) {
	for _, f := range gs.Foundations {
		if !f.IsComplete() {
			return none()
		}
	}
	return Suggestion{Kind: KindWin, Tableau: -1, Target: -1, Message: msgWin}, true
}

// autoFinish fires when the stock is exhausted and no tableau has face-down
// cards left, so the rest can be played to the foundations without strategy.
// A table with no cards left on it has nothing to finish.
func autoFinish(gs *game.GameState) (Suggestion, bool) {
	if gs.Waste.PilePresent {
		return none()
	}
	for _, t := range gs.Tableaus {
		if t.Hidden() != 0 {
			return none()
		}
	}
	if gs.CardsInPlay() == 0 {
		return none()
	}
	return Suggestion{Kind: KindAutoFinish, From: PileTableau, To: PileFoundation, Tableau: -1, Target: -1, Message: msgAutoFinish}, true
}

// checkAce moves an exposed ace to a foundation. Tableaus are checked before
// the waste.
func checkAce(gs *game.GameState) (Suggestion, bool) {
	for i, t := range gs.Tableaus {
		if card, ok := t.Top(); ok && card.Rank == game.Ace {
			return Suggestion{
				Kind:    KindAceToFoundation,
				Cards:   []game.Card{card},
				From:    PileTableau,
				To:      PileFoundation,
				Tableau: i,
				Target:  -1,
				Message: fmt.Sprintf(msgAce, card),
			}, true
		}
	}
	if card, ok := gs.Waste.Top(); ok && card.Rank == game.Ace {
		return Suggestion{
			Kind:    KindAceToFoundation,
			Cards:   []game.Card{card},
			From:    PileWaste,
			To:      PileFoundation,
			Tableau: -1,
			Target:  -1,
			Message: fmt.Sprintf(msgAce, card),
		}, true
	}
	return none()
}

// revealHiddenCard asks the player to turn over the top face-down card of a
// tableau that has no face-up cards left. Both conditions must hold: a slot
// with neither visible nor hidden cards is simply empty.
func revealHiddenCard(gs *game.GameState) (Suggestion, bool) {
	for i, t := range gs.Tableaus {
		if !t.HasVisible() && t.Hidden() > 0 {
			return Suggestion{
				Kind:    KindFlipHidden,
				From:    PileTableau,
				Tableau: i,
				Target:  -1,
				Message: msgRevealHidden,
			}, true
		}
	}
	return none()
}

// revealCardFromWaste draws from the stock while it has cards.
func revealCardFromWaste(gs *game.GameState) (Suggestion, bool) {
	if !gs.Waste.PilePresent {
		return none()
	}
	return Suggestion{Kind: KindDrawWaste, From: PileStock, To: PileWaste, Tableau: -1, Target: -1, Message: msgDrawWaste}, true
}
