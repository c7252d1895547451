package experiments

import (
	"fmt"
	"sync"
	"time"

	"klondike/deal"
	"klondike/experiments/metrics"
	"klondike/game"
	"klondike/placement"
	"klondike/searcher"

	"github.com/rs/zerolog/log"
)

var throughputGoroutines = []int{1, 2, 4, 8, 16}

// MeasureThroughput runs the cascade over the same positions with a shared
// searcher split across each number of goroutines.
func MeasureThroughput(cfg Config, goroutines []int, rounds int) ([]metrics.ThroughputMetric, error) {
	if len(goroutines) == 0 {
		goroutines = throughputGoroutines
	}
	states, err := positions(cfg)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, nil
	}

	sr := searcher.New()
	var results []metrics.ThroughputMetric
	for _, n := range goroutines {
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			total int
		)
		start := time.Now()
		for g := 0; g < n; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				count := 0
				for r := 0; r < rounds; r++ {
					for i := g; i < len(states); i += n {
						last := searcher.NoMove
						for {
							s, _ := sr.Suggest(states[i], last)
							count++
							if !s.Found() {
								break
							}
							last = s.Category
						}
					}
				}
				mu.Lock()
				total += count
				mu.Unlock()
			}(g)
		}
		wg.Wait()

		m := metrics.ThroughputMetric{Goroutines: n, Suggestions: total, Duration: time.Since(start)}
		log.Info().Msgf("goroutines=%d suggestions=%d per_second=%.0f", n, total, m.PerSecond())
		results = append(results, m)
	}
	return results, nil
}

func RunThroughputExperiment(cfg Config) (string, error) {
	log.Info().Msg("starting throughput experiment...")

	results, err := MeasureThroughput(cfg, nil, 10)
	if err != nil {
		return "", err
	}

	writer, err := metrics.NewWriter(cfg.OutDir, "throughput")
	if err != nil {
		return "", err
	}
	if err := writer.WriteThroughput(results); err != nil {
		return "", err
	}
	log.Info().Msg("stored throughput records")
	return writer.BaseDir(), nil
}

func positions(cfg Config) ([]*game.GameState, error) {
	draws := cfg.Draws
	if len(draws) == 0 {
		draws = defaultDraws
	}
	var states []*game.GameState
	for i := 0; i < cfg.Deals; i++ {
		d := deal.New(cfg.Seed + uint64(i))
		for _, n := range draws {
			in, err := d.Position(n)
			if err != nil {
				return nil, err
			}
			gs, err := placement.Translate(in)
			if err != nil {
				return nil, fmt.Errorf("deal %d: %w", d.Seed, err)
			}
			states = append(states, gs)
		}
	}
	return states, nil
}
