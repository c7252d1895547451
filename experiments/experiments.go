package experiments

import (
	"fmt"
	"time"

	"klondike/deal"
	"klondike/engine"
	"klondike/experiments/metrics"
	"klondike/meta"
	"klondike/searcher"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Deals  int
	Seed   uint64 // deal i uses Seed+i
	Draws  []int  // stock draws before each examined position
	OutDir string
}

var defaultDraws = []int{0, 1, 3, 8}

// Result holds everything recorded by Play.
type Result struct {
	Games      []metrics.GameRecord
	Moves      []metrics.MoveRecord
	Categories metrics.Collector
}

// Play deals cfg.Deals random games and, for every examined position, asks
// a fresh session for suggestions until the cascade is exhausted.
func Play(cfg Config) (Result, error) {
	draws := cfg.Draws
	if len(draws) == 0 {
		draws = defaultDraws
	}

	sr := searcher.New(searcher.WithMetrics())
	result := Result{Categories: metrics.NewCollector()}
	count := 0

	for i := 0; i < cfg.Deals; i++ {
		d := deal.New(cfg.Seed + uint64(i))

		for _, n := range draws {
			in, err := d.Position(n)
			if err != nil {
				return Result{}, fmt.Errorf("deal %d: %w", d.Seed, err)
			}
			count++

			session := engine.NewSession(engine.WithSearcher(sr), engine.WithHistory(meta.MaxSteps+1))
			start := time.Now()
			first, err := session.Suggest(in)
			if err != nil {
				return Result{}, fmt.Errorf("deal %d: %w", d.Seed, err)
			}
			for s, step := first, 1; s.Found() && step < meta.MaxSteps; step++ {
				if s, err = session.Another(); err != nil {
					return Result{}, fmt.Errorf("deal %d: %w", d.Seed, err)
				}
			}
			end := time.Now()

			history := session.History()
			suggestions := 0
			for step, u := range history {
				result.Categories.Add(u.Suggestion.Category)
				if u.Suggestion.Found() {
					suggestions++
				}
				result.Moves = append(result.Moves, metrics.MoveRecord{
					Game: count,
					MoveMetric: metrics.MoveMetric{
						Step:          step + 1,
						SearchMetrics: u.Metrics,
						Kind:          u.Suggestion.Kind,
						Resumed:       u.Resumed,
					},
				})
			}
			result.Games = append(result.Games, metrics.GameRecord{
				ID: count,
				GameMetric: metrics.GameMetric{
					Seed:          d.Seed,
					Draws:         n,
					Suggestions:   suggestions,
					FirstCategory: first.Category,
					StartTime:     start,
					EndTime:       end,
					Duration:      end.Sub(start),
				},
			})
		}
		log.Debug().Msgf("completed deal %d of %d", i+1, cfg.Deals)
	}
	return result, nil
}

// RunCategoryExperiment plays the deals and stores the records as CSV files
// under cfg.OutDir. It returns the directory written to.
func RunCategoryExperiment(cfg Config) (string, error) {
	log.Info().Msgf("starting category experiment with %d deals...", cfg.Deals)

	result, err := Play(cfg)
	if err != nil {
		return "", err
	}
	log.Info().Msgf("completed category experiment: %d positions, %d suggestions", len(result.Games), len(result.Moves))

	writer, err := metrics.NewWriter(cfg.OutDir, "categories")
	if err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	if err := writer.WriteCategoryCounts(result.Categories); err != nil {
		return "", err
	}
	log.Info().Msg("stored category counts")
	return writer.BaseDir(), nil
}
