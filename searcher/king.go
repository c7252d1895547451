package searcher

import (
	"fmt"

	"klondike/game"
)

type kingCandidate struct {
	card    game.Card
	tableau int // -1 for the waste
}

// availableKings collects the kings worth moving to an empty slot: a king
// lying directly on face-down cards, or the waste card. It also returns the
// first empty slot, or -1 if there is none.
func availableKings(gs *game.GameState) ([]kingCandidate, int) {
	var kings []kingCandidate
	emptySlot := -1
	for i, t := range gs.Tableaus {
		if t.IsEmpty() {
			if emptySlot < 0 {
				emptySlot = i
			}
			continue
		}
		if bottom, ok := t.Bottom(); ok && bottom.Rank == game.King && t.Hidden() > 0 {
			kings = append(kings, kingCandidate{card: bottom, tableau: i})
		}
	}
	if card, ok := gs.Waste.Top(); ok && card.Rank == game.King {
		kings = append(kings, kingCandidate{card: card, tableau: -1})
	}
	return kings, emptySlot
}

// kingCheck moves a king into an empty tableau slot. With several kings to
// choose from, the one whose color can take over the run that frees the most
// face-down cards wins.
func kingCheck(gs *game.GameState) (Suggestion, bool) {
	kings, emptySlot := availableKings(gs)
	if emptySlot < 0 || len(kings) == 0 {
		return none()
	}

	if len(kings) == 1 {
		return kingSuggestion(kings[0], emptySlot), true
	}
	if king, ok := bestKing(gs, kings); ok {
		return kingSuggestion(king, emptySlot), true
	}
	return Suggestion{
		Kind:    KindKingToEmpty,
		To:      PileEmptyTableau,
		Tableau: -1,
		Target:  emptySlot,
		AnyKing: true,
		Message: fmt.Sprintf(msgKing, msgAnyKing),
	}, true
}

// bestKing scores the king colors. For every search value from king down to
// ace it looks at the cards of that value lying on face-down stacks which
// could end up in a king's run. The stack with the most face-down cards sets
// the record, and each compatible king of a record-holding stack scores a
// point for its color. The first value that leaves one color ahead decides;
// the first king of that color is returned. Returns false when the colors
// stay tied.
func bestKing(gs *game.GameState, kings []kingCandidate) (kingCandidate, bool) {
	var redScore, blackScore int

	for value := game.King; value >= game.Ace; value-- {
		redScore, blackScore = 0, 0
		mostFreed := 0

		for _, king := range kings {
			for _, t := range gs.Tableaus {
				back, ok := t.Bottom()
				if !ok || back.Rank != value || !fitsKingStack(king.card, back) {
					continue
				}
				switch {
				case t.Hidden() > mostFreed:
					mostFreed = t.Hidden()
					redScore, blackScore = 0, 0
					if king.card.Color() == game.Red {
						redScore = 1
					} else {
						blackScore = 1
					}
				case t.Hidden() == mostFreed:
					if king.card.Color() == game.Red {
						redScore++
					} else {
						blackScore++
					}
				}
			}
		}

		if redScore != blackScore {
			break
		}
	}

	if redScore == blackScore {
		return kingCandidate{}, false
	}
	winner := game.Black
	if redScore > blackScore {
		winner = game.Red
	}
	for _, king := range kings {
		if king.card.Color() == winner {
			return king, true
		}
	}
	return kingCandidate{}, false
}

// fitsKingStack reports whether card can sit in a run headed by king. Colors
// alternate down from the king, so even ranks take the opposite color and odd
// ranks the king's own.
func fitsKingStack(king, card game.Card) bool {
	sameColor := card.Color() == king.Color()
	if card.Rank%2 == 0 {
		return !sameColor
	}
	return sameColor
}

func kingSuggestion(king kingCandidate, emptySlot int) Suggestion {
	from := PileTableau
	if king.tableau < 0 {
		from = PileWaste
	}
	return Suggestion{
		Kind:    KindKingToEmpty,
		Cards:   []game.Card{king.card},
		From:    from,
		To:      PileEmptyTableau,
		Tableau: king.tableau,
		Target:  emptySlot,
		Message: fmt.Sprintf(msgKing, king.card),
	}
}
