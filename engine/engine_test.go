package engine

import (
	"sync"
	"testing"

	"klondike/placement"
	"klondike/searcher"

	"github.com/stretchr/testify/require"
)

// kingPosition has a king lying on two face-down cards, an empty slot and a
// stock left to draw from.
func kingPosition() placement.Input {
	return placement.Input{
		WastePile: true,
		Tableaus:  []placement.TableauInput{{Hidden: 2, Cards: []string{"13H"}}},
	}
}

func TestSession(t *testing.T) {
	t.Run("same position walks down the cascade", func(t *testing.T) {
		s := NewSession()

		first, err := s.Suggest(kingPosition())
		require.NoError(t, err)
		require.Equal(t, searcher.CategoryKing, first.Category)
		require.Equal(t, "Flyt Hjerter Konge til et tomt felt", first.Message)

		second, err := s.Suggest(kingPosition())
		require.NoError(t, err)
		require.Equal(t, searcher.CategoryDrawWaste, second.Category)

		third, err := s.Suggest(kingPosition())
		require.NoError(t, err)
		require.False(t, third.Found())
		require.Equal(t, searcher.KindNoNewMove, third.Kind)
		require.Equal(t, searcher.NoMove, s.Last())

		again, err := s.Suggest(kingPosition())
		require.NoError(t, err)
		require.Equal(t, searcher.CategoryKing, again.Category, "cascade starts over after exhaustion")
	})

	t.Run("new position starts from the top", func(t *testing.T) {
		s := NewSession()
		_, err := s.Suggest(kingPosition())
		require.NoError(t, err)

		other := kingPosition()
		other.Waste = "01S"
		got, err := s.Suggest(other)
		require.NoError(t, err)
		require.Equal(t, searcher.CategoryAce, got.Category)
	})

	t.Run("another resumes on the stored position", func(t *testing.T) {
		s := NewSession()
		_, err := s.Another()
		require.ErrorIs(t, err, ErrNoPosition)

		_, err = s.Suggest(kingPosition())
		require.NoError(t, err)
		got, err := s.Another()
		require.NoError(t, err)
		require.Equal(t, searcher.CategoryDrawWaste, got.Category)
	})

	t.Run("reset forgets the position", func(t *testing.T) {
		s := NewSession()
		_, err := s.Suggest(kingPosition())
		require.NoError(t, err)
		s.Reset()

		_, err = s.Another()
		require.ErrorIs(t, err, ErrNoPosition)
		got, err := s.Suggest(kingPosition())
		require.NoError(t, err)
		require.Equal(t, searcher.CategoryKing, got.Category)
	})

	t.Run("malformed input leaves the session untouched", func(t *testing.T) {
		s := NewSession()
		_, err := s.Suggest(kingPosition())
		require.NoError(t, err)

		_, err = s.Suggest(placement.Input{Waste: "99X"})
		require.ErrorIs(t, err, placement.ErrMalformedInput)
		require.Equal(t, searcher.CategoryKing, s.Last())
	})

	t.Run("nil state is an empty table", func(t *testing.T) {
		s := NewSession()
		var got searcher.Suggestion
		require.NotPanics(t, func() { got = s.SuggestState(nil) })
		require.Equal(t, searcher.NoMove, got.Category)
		require.Equal(t, searcher.KindNoMove, got.Kind)

		got = s.SuggestState(nil)
		require.Equal(t, searcher.KindNoMove, got.Kind, "a terminal result is not resumed from")
	})

	t.Run("history is bounded", func(t *testing.T) {
		s := NewSession(WithHistory(2), WithSearcher(searcher.New(searcher.WithMetrics())))
		for i := 0; i < 3; i++ {
			_, err := s.Suggest(kingPosition())
			require.NoError(t, err)
		}
		h := s.History()
		require.Len(t, h, 2)
		require.True(t, h[0].Resumed)
		require.Equal(t, searcher.CategoryDrawWaste, h[0].Suggestion.Category)
		require.Equal(t, searcher.NoMove, h[1].Suggestion.Category)
		require.Equal(t, 6, h[0].Metrics.RulesEvaluated)
	})
}

func TestSessions(t *testing.T) {
	r := NewSessions()
	s := r.Create()
	require.NotEmpty(t, s.ID)
	require.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)

	_, err = r.Get("missing")
	require.ErrorIs(t, err, ErrUnknownSession)

	named := r.GetOrCreate("table-1")
	require.Equal(t, "table-1", named.ID)
	require.Same(t, named, r.GetOrCreate("table-1"))
	require.Equal(t, 2, r.Len())

	require.NoError(t, r.Delete(s.ID))
	require.ErrorIs(t, r.Delete(s.ID), ErrUnknownSession)
	require.Equal(t, 1, r.Len())
}

func TestSessionConcurrentUse(t *testing.T) {
	s := NewSession()
	errs := make(chan error, 8*20)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := s.Suggest(kingPosition())
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.GreaterOrEqual(t, s.Last(), searcher.NoMove)
}
