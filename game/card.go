package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCard = errors.New("invalid card")

// Suit is one of the four French suits. The numbering alternates red and black.
type Suit int

const (
	Hearts   Suit = iota // 0
	Spades               // 1
	Diamonds             // 2
	Clubs                // 3
)

// Suits lists the suits in foundation slot order.
var Suits = [NumFoundations]Suit{Hearts, Spades, Diamonds, Clubs}

type Color int

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

var suitNames = [...]string{"Hjerter", "Spar", "Ruder", "Klør"}
var suitCodes = [...]string{"H", "S", "D", "C"}

func (s Suit) Valid() bool {
	return s >= Hearts && s <= Clubs
}

// Color returns red for hearts and diamonds, black for spades and clubs.
func (s Suit) Color() Color {
	if s%2 == 0 {
		return Red
	}
	return Black
}

// Name returns the Danish suit name used when rendering cards.
func (s Suit) Name() string {
	if !s.Valid() {
		return "?"
	}
	return suitNames[s]
}

// Code returns the single letter used in card codes.
func (s Suit) Code() string {
	if !s.Valid() {
		return "?"
	}
	return suitCodes[s]
}

func (s Suit) String() string {
	return s.Name()
}

// ParseSuit maps a suit letter (H, S, D, C, any case) to a Suit.
func ParseSuit(code string) (Suit, error) {
	switch strings.ToUpper(code) {
	case "H":
		return Hearts, nil
	case "S":
		return Spades, nil
	case "D":
		return Diamonds, nil
	case "C":
		return Clubs, nil
	}
	return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, code)
}

// Rank is the card value, 1 (ace) through 13 (king).
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Name returns the Danish rank name, or the decimal value for pip cards.
func (r Rank) Name() string {
	switch r {
	case Ace:
		return "Es"
	case Jack:
		return "Knægt"
	case Queen:
		return "Dame"
	case King:
		return "Konge"
	}
	return strconv.Itoa(int(r))
}

// Card is an immutable playing card. The zero value is not a valid card.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard returns a validated card.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: suit %d", ErrInvalidCard, suit)
	}
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: rank %d out of 1..13", ErrInvalidCard, rank)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCard decodes a card code: a zero padded two digit rank followed by a
// suit letter, e.g. "02S" or "13h".
func ParseCard(code string) (Card, error) {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return Card{}, fmt.Errorf("%w: code %q must be 3 characters", ErrInvalidCard, code)
	}
	if !isDigit(code[0]) || !isDigit(code[1]) {
		return Card{}, fmt.Errorf("%w: code %q has no numeric rank", ErrInvalidCard, code)
	}
	value, err := strconv.Atoi(code[:2])
	if err != nil {
		return Card{}, fmt.Errorf("%w: code %q: %v", ErrInvalidCard, code, err)
	}
	suit, err := ParseSuit(code[2:])
	if err != nil {
		return Card{}, err
	}
	return NewCard(suit, Rank(value))
}

// MustParseCard is ParseCard for literals known to be valid.
func MustParseCard(code string) Card {
	c, err := ParseCard(code)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

func (c Card) Color() Color {
	return c.Suit.Color()
}

// String renders the card as "<SuitName> <RankName>", e.g. "Spar 2".
func (c Card) String() string {
	return c.Suit.Name() + " " + c.Rank.Name()
}

// Code returns the card code understood by ParseCard.
func (c Card) Code() string {
	return fmt.Sprintf("%02d%s", int(c.Rank), c.Suit.Code())
}

// StacksOn reports whether c may be placed on other in a tableau.
func (c Card) StacksOn(other Card) bool {
	return c.Rank == other.Rank-1 && c.Color() != other.Color()
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidCard, c.Suit, c.Rank)
	}
	return []byte(c.Code()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
