package engine

import (
	"errors"
	"sync"

	"klondike/game"
	"klondike/placement"
	"klondike/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownSession = errors.New("unknown session")
	ErrNoPosition     = errors.New("no position has been submitted")
)

// Update is one suggestion handed out by a session.
type Update struct {
	Suggestion searcher.Suggestion
	Metrics    searcher.SearchMetrics
	// Resumed is set when the cascade continued after the previous category
	// because the same position was submitted again.
	Resumed bool
}

type Option func(s *Session)

func WithSearcher(sr *searcher.Searcher) Option {
	return func(s *Session) {
		s.searcher = sr
	}
}

// WithHistory keeps the last n updates of the session. Zero disables it.
func WithHistory(n int) Option {
	return func(s *Session) {
		s.historySize = n
	}
}

// Session remembers the last position and the category that was suggested
// for it, so that asking again for the same position yields the next best
// move instead of repeating the first one.
type Session struct {
	ID string

	mu          sync.Mutex
	searcher    *searcher.Searcher
	previous    *game.GameState
	last        searcher.Category
	historySize int
	history     []Update
}

func NewSession(options ...Option) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		searcher: searcher.New(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Suggest translates the placement and returns the best move for it. If the
// placement describes the same position as the previous call, the search
// resumes after the category suggested last time.
func (s *Session) Suggest(in placement.Input) (searcher.Suggestion, error) {
	gs, err := placement.Translate(in)
	if err != nil {
		return searcher.Suggestion{}, err
	}
	return s.SuggestState(gs), nil
}

// SuggestState is Suggest for an already translated position. The session
// keeps its own copy of gs. A nil gs is an empty table.
func (s *Session) SuggestState(gs *game.GameState) searcher.Suggestion {
	if gs == nil {
		gs = game.NewGameState()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := searcher.NoMove
	if s.previous != nil && s.previous.Equal(gs) {
		from = s.last
	}
	s.previous = gs.Copy()
	return s.suggest(from)
}

// Another asks for the next move on the stored position without submitting
// a new one.
func (s *Session) Another() (searcher.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.previous == nil {
		return searcher.Suggestion{}, ErrNoPosition
	}
	return s.suggest(s.last), nil
}

// Reset forgets the stored position.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.previous = nil
	s.last = searcher.NoMove
	s.history = nil
}

// Last returns the category of the most recent suggestion.
func (s *Session) Last() searcher.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Session) History() []Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Update(nil), s.history...)
}

// suggest must be called with mu held.
func (s *Session) suggest(from searcher.Category) searcher.Suggestion {
	suggestion, metrics := s.searcher.Suggest(s.previous, from)
	// a terminal result stores NoMove so the next request starts over
	s.last = suggestion.Category

	log.Debug().
		Str("session", s.ID).
		Stringer("resumed_after", from).
		Stringer("category", suggestion.Category).
		Msg(suggestion.Message)

	if s.historySize > 0 {
		s.history = append(s.history, Update{
			Suggestion: suggestion,
			Metrics:    metrics,
			Resumed:    from != searcher.NoMove,
		})
		if over := len(s.history) - s.historySize; over > 0 {
			s.history = s.history[over:]
		}
	}
	return suggestion
}
