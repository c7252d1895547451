package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"klondike/communication"
	"klondike/engine"
	"klondike/placement"
	"klondike/searcher"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Option func(s *Server)

// WithRateLimit caps the requests per second the server accepts.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(s *Server) {
		s.limiter = rate.NewLimiter(limit, burst)
	}
}

func WithSessions(sessions *engine.Sessions) Option {
	return func(s *Server) {
		s.sessions = sessions
	}
}

func WithSearcher(sr *searcher.Searcher) Option {
	return func(s *Server) {
		s.searcher = sr
	}
}

// Server exposes the advisor over HTTP.
type Server struct {
	sessions *engine.Sessions
	searcher *searcher.Searcher
	limiter  *rate.Limiter
	started  time.Time
	router   *gin.Engine
}

func New(options ...Option) *Server {
	s := &Server{
		searcher: searcher.New(),
		started:  time.Now(),
	}
	for _, option := range options {
		option(s)
	}
	if s.sessions == nil {
		s.sessions = engine.NewSessions(engine.WithSearcher(s.searcher))
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if s.limiter != nil {
		r.Use(rateLimiter(s.limiter))
	}

	r.GET("/status", s.handleStatus)
	r.POST("/suggest", s.handleSuggest)
	r.POST("/sessions", s.handleCreateSession)

	sessions := r.Group("/sessions/:id")
	sessions.POST("/suggest", s.handleSessionSuggest)
	sessions.POST("/another", s.handleSessionAnother)
	sessions.POST("/reset", s.handleSessionReset)
	sessions.DELETE("", s.handleDeleteSession)

	return r
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, communication.StatusResponse{
		Sessions: s.sessions.Len(),
		Uptime:   time.Since(s.started).Round(time.Second).String(),
	})
}

// handleSuggest answers a single position without remembering it.
func (s *Server) handleSuggest(c *gin.Context) {
	in, err := placement.Decode(c.Request.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}
	gs, err := placement.Translate(in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	suggestion, _ := s.searcher.Suggest(gs, searcher.NoMove)
	c.JSON(http.StatusOK, suggestion)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	session := s.sessions.Create()
	log.Debug().Str("session", session.ID).Msg("session created")
	c.JSON(http.StatusCreated, communication.SessionResponse{ID: session.ID})
}

func (s *Server) handleSessionSuggest(c *gin.Context) {
	session, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	in, err := placement.Decode(c.Request.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}
	suggestion, err := session.Suggest(in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

func (s *Server) handleSessionAnother(c *gin.Context) {
	session, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	suggestion, err := session.Another()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

func (s *Server) handleSessionReset(c *gin.Context) {
	session, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	session.Reset()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StatusFor maps an advisor error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, placement.ErrMalformedInput), errors.Is(err, placement.ErrInvalidSlotIndex):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNoPosition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, communication.NewErrorResponse(err))
}
