package metrics

import (
	"sync/atomic"
	"time"

	"klondike/searcher"
)

// GameMetric summarizes one position of one deal.
type GameMetric struct {
	Seed          uint64
	Draws         int // cards turned from the stock before the position
	Suggestions   int // moves handed out until the cascade was exhausted
	FirstCategory searcher.Category
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

type MoveMetric struct {
	Step int
	searcher.SearchMetrics
	Kind    searcher.Kind
	Resumed bool
}

type ThroughputMetric struct {
	Goroutines  int
	Suggestions int
	Duration    time.Duration
}

func (m ThroughputMetric) PerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Suggestions) / m.Duration.Seconds()
}

// Collector counts suggestions by category. It is safe for concurrent use.
type Collector interface {
	Add(c searcher.Category)
	Count(c searcher.Category) int
	Total() int
}

type collector struct {
	counts [searcher.MaxCategory + 1]atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Add(c searcher.Category) {
	if c < searcher.NoMove || c > searcher.MaxCategory {
		return
	}
	m.counts[c].Add(1)
}

func (m *collector) Count(c searcher.Category) int {
	if c < searcher.NoMove || c > searcher.MaxCategory {
		return 0
	}
	return int(m.counts[c].Load())
}

func (m *collector) Total() int {
	total := 0
	for i := range m.counts {
		total += int(m.counts[i].Load())
	}
	return total
}
