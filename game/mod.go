package game

const (
	NumTableaus    = 7
	NumFoundations = 4
	NumCards       = 52

	// MaxHidden is the deepest face-down stack a Klondike deal produces.
	MaxHidden = NumTableaus - 1
)
