package game

// Foundation is a single-suit pile built up from the ace. Only the top card
// is stored: every rank below it is implicitly present.
type Foundation struct {
	top Card
}

// NewFoundation returns a foundation whose top card is top.
func NewFoundation(top Card) Foundation {
	return Foundation{top: top}
}

// Peek returns the top card, or false for an unbound (empty) foundation.
func (f Foundation) Peek() (Card, bool) {
	return f.top, f.top.Valid()
}

// Count returns the number of cards in the foundation.
func (f Foundation) Count() int {
	if !f.top.Valid() {
		return 0
	}
	return int(f.top.Rank)
}

func (f Foundation) IsEmpty() bool {
	return !f.top.Valid()
}

func (f Foundation) IsComplete() bool {
	return f.top.Valid() && f.top.Rank == King
}

// Suit returns the suit the foundation is bound to, or false if it is empty.
func (f Foundation) Suit() (Suit, bool) {
	return f.top.Suit, f.top.Valid()
}

// Accepts reports whether c is the next card for this foundation.
func (f Foundation) Accepts(c Card) bool {
	if !f.top.Valid() {
		return c.Rank == Ace
	}
	return c.Suit == f.top.Suit && c.Rank == f.top.Rank+1
}
