// Package placement holds the snapshot handed over by the capture or manual
// entry collaborator and translates it into a game.GameState.
package placement

import (
	"encoding/json"
	"fmt"
	"io"
)

// Input is a raw table snapshot. Card codes are "NNS": a two digit rank and
// a suit letter (H, S, D, C). Empty strings and missing slots mean the slot
// is empty or has not been captured yet.
type Input struct {
	// WastePile reports whether the stock still holds cards to draw.
	WastePile bool `json:"waste_pile" yaml:"waste_pile" toml:"waste_pile"`
	// Waste is the visible top card of the waste, if any.
	Waste string `json:"waste,omitempty" yaml:"waste,omitempty" toml:"waste,omitempty"`
	// Foundations holds the top card of each foundation slot.
	Foundations []string       `json:"foundations,omitempty" yaml:"foundations,omitempty" toml:"foundations,omitempty"`
	Tableaus    []TableauInput `json:"tableaus,omitempty" yaml:"tableaus,omitempty" toml:"tableaus,omitempty"`
}

type TableauInput struct {
	Hidden int      `json:"hidden" yaml:"hidden" toml:"hidden"`
	Cards  []string `json:"cards,omitempty" yaml:"cards,omitempty" toml:"cards,omitempty"`
	// TopFirst marks Cards as listed from the movable top card downwards.
	TopFirst bool `json:"top_first,omitempty" yaml:"top_first,omitempty" toml:"top_first,omitempty"`
}

// Decode reads a JSON encoded Input.
func Decode(r io.Reader) (Input, error) {
	var in Input
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return Input{}, fmt.Errorf("%w: decode placement: %v", ErrMalformedInput, err)
	}
	return in, nil
}
