package placement

import (
	"strings"
	"testing"

	"klondike/game"

	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	t.Run("full snapshot", func(t *testing.T) {
		in := Input{
			WastePile:   true,
			Waste:       "07d",
			Foundations: []string{"02H", "", "01C"},
			Tableaus: []TableauInput{
				{Hidden: 0, Cards: []string{"13S", "12H"}},
				{Hidden: 3},
				{Hidden: 2, Cards: []string{"05C", "06D", "07S"}, TopFirst: true},
			},
		}

		gs, err := Translate(in)
		require.NoError(t, err)

		top, ok := gs.Waste.Top()
		require.True(t, ok)
		require.Equal(t, "Ruder 7", top.String())
		require.True(t, gs.Waste.PilePresent)

		f, ok := gs.Foundations[0].Peek()
		require.True(t, ok)
		require.Equal(t, game.MustParseCard("02H"), f)
		require.True(t, gs.Foundations[1].IsEmpty())
		require.True(t, gs.Foundations[3].IsEmpty())

		require.Equal(t, []game.Card{game.MustParseCard("13S"), game.MustParseCard("12H")}, gs.Tableaus[0].Visible())
		require.Equal(t, 3, gs.Tableaus[1].Hidden())
		require.False(t, gs.Tableaus[1].HasVisible())

		bottom, _ := gs.Tableaus[2].Bottom()
		require.Equal(t, game.MustParseCard("07S"), bottom, "top-first runs are normalized to bottom-first")
		require.True(t, gs.Tableaus[6].IsEmpty(), "absent slots default to empty")
	})

	t.Run("empty input is an empty table", func(t *testing.T) {
		gs, err := Translate(Input{})
		require.NoError(t, err)
		require.True(t, gs.Equal(game.NewGameState()))
	})

	t.Run("rejects too many slots", func(t *testing.T) {
		_, err := Translate(Input{Tableaus: make([]TableauInput, 8)})
		require.ErrorIs(t, err, ErrInvalidSlotIndex)

		_, err = Translate(Input{Foundations: []string{"", "", "", "", ""}})
		require.ErrorIs(t, err, ErrInvalidSlotIndex)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		bad := []Input{
			{Waste: "14H"},
			{Waste: "00S"},
			{Waste: "05Q"},
			{Foundations: []string{"1H"}},
			{Tableaus: []TableauInput{{Cards: []string{"XXH"}}}},
		}
		for _, in := range bad {
			_, err := Translate(in)
			require.ErrorIs(t, err, ErrMalformedInput, "%+v", in)
			require.ErrorIs(t, err, game.ErrInvalidCard, "%+v", in)
		}
	})

	t.Run("rejects bad hidden counts", func(t *testing.T) {
		_, err := Translate(Input{Tableaus: []TableauInput{{Hidden: -1}}})
		require.ErrorIs(t, err, ErrMalformedInput)
		_, err = Translate(Input{Tableaus: []TableauInput{{Hidden: 7}}})
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("rejects broken runs", func(t *testing.T) {
		_, err := Translate(Input{Tableaus: []TableauInput{{Cards: []string{"09H", "08D"}}}})
		require.ErrorIs(t, err, ErrMalformedInput)
		require.ErrorIs(t, err, game.ErrBrokenRun)
	})

	t.Run("rejects duplicate foundation suits", func(t *testing.T) {
		_, err := Translate(Input{Foundations: []string{"03S", "05S"}})
		require.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("does not alias input buffers", func(t *testing.T) {
		in := Input{Tableaus: []TableauInput{{Cards: []string{"09S", "08H"}}}}
		gs, err := Translate(in)
		require.NoError(t, err)
		in.Tableaus[0].Cards[0] = "13C"
		bottom, _ := gs.Tableaus[0].Bottom()
		require.Equal(t, game.MustParseCard("09S"), bottom)
	})
}

func TestDecode(t *testing.T) {
	in, err := Decode(strings.NewReader(`{"waste_pile":true,"waste":"01S","tableaus":[{"hidden":2,"cards":["05H"]}]}`))
	require.NoError(t, err)
	require.True(t, in.WastePile)
	require.Equal(t, "01S", in.Waste)
	require.Equal(t, 2, in.Tableaus[0].Hidden)

	_, err = Decode(strings.NewReader(`{"wastes":1}`))
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestBuilder(t *testing.T) {
	b := NewBuilder().SetWastePile(true)
	require.NoError(t, b.SetWaste("04C"))
	require.NoError(t, b.SetWaste("05C"), "waste is replaced, not stacked")

	require.NoError(t, b.PutFoundation("01H"))
	require.NoError(t, b.PutFoundation("01S"))
	require.NoError(t, b.PutFoundation("02H"), "same suit overwrites")

	require.NoError(t, b.PushTop(0, "09S"))
	require.NoError(t, b.PushTop(0, "08H"))
	require.NoError(t, b.PushBottom(0, "10D"))
	require.NoError(t, b.SetHidden(0, 4))

	require.ErrorIs(t, b.PushTop(7, "01D"), ErrInvalidSlotIndex)
	require.ErrorIs(t, b.PushTop(1, "01X"), ErrMalformedInput)
	require.ErrorIs(t, b.SetHidden(1, 9), ErrMalformedInput)

	in := b.Input()
	require.Equal(t, "05C", in.Waste)
	require.Equal(t, []string{"02H", "01S"}, in.Foundations)
	require.Equal(t, []string{"10D", "09S", "08H"}, in.Tableaus[0].Cards)
	require.Equal(t, 4, in.Tableaus[0].Hidden)

	gs, err := Translate(in)
	require.NoError(t, err)
	require.Equal(t, 3, gs.Tableaus[0].Len())

	require.NoError(t, b.PutFoundation("01D"))
	require.NoError(t, b.PutFoundation("01C"))
	require.NoError(t, b.PutFoundation("02D"))
	require.Len(t, b.Input().Foundations, 4)
	require.ErrorIs(t, NewBuilder().PutFoundation("13X"), ErrMalformedInput)
}
