package searcher

import (
	"klondike/game"
)

// Category is the priority tier that produced a suggestion, 1 (highest)
// through 10. Zero means no move was found.
type Category int

const (
	NoMove Category = iota // 0
	CategoryWin
	CategoryAutoFinish
	CategoryAce
	CategoryKing
	CategoryRevealHidden
	CategoryTableau
	CategoryFoundation
	CategoryTypeStreak
	CategoryFoundationToTableau
	CategoryDrawWaste
)

// MaxCategory is the last tier of the cascade.
const MaxCategory = CategoryDrawWaste

var categoryNames = [...]string{
	"no-move",
	"win",
	"auto-finish",
	"ace",
	"king",
	"reveal-hidden",
	"tableau",
	"foundation",
	"type-streak",
	"foundation-to-tableau",
	"draw-waste",
}

func (c Category) String() string {
	if c < NoMove || c > MaxCategory {
		return "unknown"
	}
	return categoryNames[c]
}

// Kind describes the concrete move inside a category.
type Kind string

const (
	KindWin                 Kind = "win"
	KindAutoFinish          Kind = "auto-finish"
	KindAceToFoundation     Kind = "ace-to-foundation"
	KindKingToEmpty         Kind = "king-to-empty"
	KindFlipHidden          Kind = "flip-hidden"
	KindRunToTableau        Kind = "run-to-tableau"
	KindCardToTableau       Kind = "card-to-tableau"
	KindWasteToTableau      Kind = "waste-to-tableau"
	KindToFoundation        Kind = "to-foundation"
	KindFoundationToTableau Kind = "foundation-to-tableau"
	KindDrawWaste           Kind = "draw-waste"
	KindNoMove              Kind = "no-move"
	KindNoNewMove           Kind = "no-new-move"
)

// Pile identifies where a card comes from or goes to.
type Pile string

const (
	PileNone         Pile = ""
	PileTableau      Pile = "tableau"
	PileEmptyTableau Pile = "empty-tableau"
	PileFoundation   Pile = "foundation"
	PileWaste        Pile = "waste"
	PileStock        Pile = "stock"
)

// Suggestion is the advice for a single move. Cards holds up to two cards:
// the card being moved and, when the target is a tableau, the card it is
// placed on.
type Suggestion struct {
	Category Category    `json:"category"`
	Kind     Kind        `json:"kind"`
	Cards    []game.Card `json:"cards,omitempty"`
	From     Pile        `json:"from,omitempty"`
	To       Pile        `json:"to,omitempty"`
	// Tableau is the zero based slot the move starts from, or -1.
	Tableau int `json:"tableau"`
	// Target is the zero based slot the move ends on, or -1.
	Target int `json:"target"`
	// AnyKing is set when several kings score equally and any of them will do.
	AnyKing bool   `json:"any_king,omitempty"`
	Message string `json:"message"`
}

// Found reports whether the suggestion describes an actual move.
func (s Suggestion) Found() bool {
	return s.Category != NoMove
}

func (s Suggestion) String() string {
	return s.Message
}

// Messages shown to the player.
const (
	msgWin            = "Alle grundbunker har en konge og spillet er slut"
	msgAutoFinish     = "Alle kort er frie og du kan afslutte spillet ved at lægge dem i grundbunkerne"
	msgAce            = "Ryk %s til en tom grundbunke"
	msgKing           = "Flyt %s til et tomt felt"
	msgAnyKing        = "en valgfri konge"
	msgRevealHidden   = "Vend et kort fra en mulig byggestabel"
	msgCardOnCard     = "Tag %s, og placer den på %s"
	msgRunOnCard      = "Tag alle de synlige kort fra byggestablen hvor det bagerste kort er %s, og placer dem på %s"
	msgTopOnCard      = "Tag %s og placer kortet på %s"
	msgToFoundation   = "Flyt %s til grundbunken med dens kulør"
	msgFromFoundation = "Ryk %s fra grundbunken ned på rækken med %s"
	msgDrawWaste      = "Vend et kort fra bunken"
	msgNoMove         = "Der kunne ikke findes noget muligt træk for denne position"
	msgNoNewMove      = "Der kunne ikke findes noget nyt træk for denne position af spillet"
)

func none() (Suggestion, bool) {
	return Suggestion{}, false
}

func terminal(last Category) Suggestion {
	if last <= NoMove {
		return Suggestion{Category: NoMove, Kind: KindNoMove, Tableau: -1, Target: -1, Message: msgNoMove}
	}
	return Suggestion{Category: NoMove, Kind: KindNoNewMove, Tableau: -1, Target: -1, Message: msgNoNewMove}
}
