package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"klondike/experiments/metrics"
	"klondike/searcher"

	"github.com/stretchr/testify/require"
)

func TestPlay(t *testing.T) {
	cfg := Config{Deals: 3, Seed: 11, Draws: []int{0, 2}}
	result, err := Play(cfg)
	require.NoError(t, err)
	require.Len(t, result.Games, 6)

	for _, g := range result.Games {
		require.True(t, g.FirstCategory > searcher.NoMove, "a fresh deal with a stock always has a move")
		require.Positive(t, g.Suggestions)
	}

	// every walk ends with exactly one terminal result
	terminals := 0
	for _, m := range result.Moves {
		if m.Category == searcher.NoMove {
			terminals++
			require.Equal(t, searcher.KindNoNewMove, m.Kind)
		}
	}
	require.Equal(t, len(result.Games), terminals)
	require.Equal(t, len(result.Moves), result.Categories.Total())
	require.Equal(t, len(result.Games), result.Categories.Count(searcher.CategoryDrawWaste), "every position with a stock ends on a draw")

	again, err := Play(cfg)
	require.NoError(t, err)
	require.Equal(t, len(result.Moves), len(again.Moves), "seeded deals are reproducible")
}

func TestRunCategoryExperiment(t *testing.T) {
	dir, err := RunCategoryExperiment(Config{Deals: 2, Seed: 3, OutDir: t.TempDir()})
	require.NoError(t, err)

	for name, rows := range map[string]int{"games.csv": 1 + 2*len(defaultDraws), "categories.csv": 1 + int(searcher.MaxCategory) + 1} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, f.Close())
		require.NoError(t, err)
		require.Len(t, records, rows, name)
	}
}

func TestMeasureThroughput(t *testing.T) {
	results, err := MeasureThroughput(Config{Deals: 2, Seed: 5, Draws: []int{0}}, []int{1, 3}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, results[0].Suggestions, results[1].Suggestions, "the work is the same however it is split")
	require.Equal(t, 3, results[1].Goroutines)
}

func TestCollector(t *testing.T) {
	c := metrics.NewCollector()
	c.Add(searcher.CategoryAce)
	c.Add(searcher.CategoryAce)
	c.Add(searcher.Category(42))
	require.Equal(t, 2, c.Count(searcher.CategoryAce))
	require.Equal(t, 2, c.Total())
	require.Zero(t, c.Count(searcher.Category(-1)))
}
