package game

// Waste is the discard pile. Only its top card is visible, and PilePresent
// tells whether the stock can still be drawn from.
type Waste struct {
	PilePresent bool
	top         Card
}

// NewWaste returns a waste with the given top card. Pass the zero Card for an
// empty waste.
func NewWaste(pilePresent bool, top Card) Waste {
	return Waste{PilePresent: pilePresent, top: top}
}

// Top returns the visible waste card, if any.
func (w Waste) Top() (Card, bool) {
	return w.top, w.top.Valid()
}
