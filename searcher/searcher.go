package searcher

import (
	"klondike/game"
)

// rule returns a suggestion if its kind of move applies to the table.
// Rules only read the state.
type rule func(gs *game.GameState) (Suggestion, bool)

// cascade lists the rules in priority order; cascade[i] produces category i+1.
var cascade = [MaxCategory]rule{
	checkWin,
	autoFinish,
	checkAce,
	kingCheck,
	revealHiddenCard,
	moveTableau,
	moveToFoundation,
	typeStreak,
	foundationToTableau,
	revealCardFromWaste,
}

type Option func(s *Searcher)

// WithMetrics makes Suggest report timing and the number of rules evaluated.
func WithMetrics() Option {
	return func(s *Searcher) {
		s.newCollector = NewMetricsCollector
	}
}

// Searcher evaluates the rule cascade. It holds no per-call state and may be
// shared between goroutines.
type Searcher struct {
	newCollector func() MetricsCollector
}

func New(options ...Option) *Searcher {
	s := &Searcher{
		newCollector: NewNoMetricsCollector,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var defaultSearcher = New()

// Suggest returns the best move for gs, skipping every category up to and
// including last. Pass NoMove to start from the top of the cascade.
func Suggest(gs *game.GameState, last Category) Suggestion {
	s, _ := defaultSearcher.Suggest(gs, last)
	return s
}

func (s *Searcher) Suggest(gs *game.GameState, last Category) (Suggestion, SearchMetrics) {
	if gs == nil {
		gs = game.NewGameState()
	}
	if last < NoMove {
		last = NoMove
	}

	metrics := s.newCollector()
	metrics.Start(last)

	for c := last + 1; c <= MaxCategory; c++ {
		metrics.AddRule()
		if suggestion, ok := cascade[c-1](gs); ok {
			suggestion.Category = c
			return suggestion, metrics.Complete(c)
		}
	}
	return terminal(last), metrics.Complete(NoMove)
}
