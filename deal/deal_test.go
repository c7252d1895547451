package deal

import (
	"testing"

	"klondike/game"
	"klondike/placement"

	"github.com/stretchr/testify/require"
)

func TestDeck(t *testing.T) {
	deck := Deck()
	require.Len(t, deck, game.NumCards)
	seen := make(map[game.Card]bool)
	for _, c := range deck {
		require.True(t, c.Valid())
		seen[c] = true
	}
	require.Len(t, seen, game.NumCards)
}

func TestNew(t *testing.T) {
	d := New(42)
	require.Equal(t, New(42), d, "same seed deals the same game")
	require.NotEqual(t, New(43).Stock, d.Stock)

	total := len(d.Stock)
	for i, cards := range d.Tableaus {
		require.Len(t, cards, i+1)
		total += len(cards)
	}
	require.Equal(t, game.NumCards, total)
	require.Len(t, d.Stock, 24)
}

func TestPosition(t *testing.T) {
	d := New(7)

	t.Run("opening", func(t *testing.T) {
		in, err := d.Opening()
		require.NoError(t, err)
		require.True(t, in.WastePile)
		require.Empty(t, in.Waste)

		gs, err := placement.Translate(in)
		require.NoError(t, err)
		for i, tab := range gs.Tableaus {
			require.Equal(t, i, tab.Hidden())
			require.Equal(t, 1, tab.Len())
			top, _ := tab.Top()
			require.Equal(t, d.Tableaus[i][i], top)
		}
		require.Equal(t, 28, gs.CardsInPlay())
	})

	t.Run("after draws", func(t *testing.T) {
		in, err := d.Position(3)
		require.NoError(t, err)
		require.Equal(t, d.Stock[2].Code(), in.Waste)
		require.True(t, in.WastePile)

		in, err = d.Position(100)
		require.NoError(t, err)
		require.False(t, in.WastePile, "stock is used up")
		require.Equal(t, d.Stock[len(d.Stock)-1].Code(), in.Waste)
	})
}
