// Package broker answers suggestion requests arriving over NATS.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"klondike/communication"
	"klondike/engine"
	"klondike/meta"
	"klondike/placement"
	"klondike/searcher"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Connect dials the NATS server at url.
func Connect(url, name string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	return nc, nil
}

type Option func(b *Broker)

func WithSubject(subject string) Option {
	return func(b *Broker) {
		b.subject = subject
	}
}

// WithQueue sets the queue group, so that several advisors share the load.
func WithQueue(queue string) Option {
	return func(b *Broker) {
		b.queue = queue
	}
}

func WithSessions(sessions *engine.Sessions) Option {
	return func(b *Broker) {
		b.sessions = sessions
	}
}

// Broker replies to SuggestRequest messages. Requests naming a session
// share its history; the session is created on first use.
type Broker struct {
	nc       *nats.Conn
	sub      *nats.Subscription
	subject  string
	queue    string
	sessions *engine.Sessions
	searcher *searcher.Searcher
}

func New(nc *nats.Conn, options ...Option) *Broker {
	b := &Broker{
		nc:       nc,
		subject:  meta.DefaultSubject,
		queue:    meta.DefaultQueue,
		searcher: searcher.New(),
	}
	for _, option := range options {
		option(b)
	}
	if b.sessions == nil {
		b.sessions = engine.NewSessions(engine.WithSearcher(b.searcher))
	}
	return b
}

func (b *Broker) Start() error {
	sub, err := b.nc.QueueSubscribe(b.subject, b.queue, func(m *nats.Msg) {
		if err := m.Respond(b.handle(m.Data)); err != nil {
			log.Error().Err(err).Msg("reply failed")
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", b.subject, err)
	}
	b.sub = sub
	log.Info().Msgf("answering on %s (queue %s)", b.subject, b.queue)
	return nil
}

// Run starts the broker and blocks until ctx is cancelled.
func (b *Broker) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return b.Stop()
}

func (b *Broker) Stop() error {
	if b.sub == nil {
		return nil
	}
	err := b.sub.Drain()
	b.sub = nil
	return err
}

// handle decodes a request and encodes either the suggestion or an
// ErrorResponse.
func (b *Broker) handle(data []byte) []byte {
	suggestion, err := b.answer(data)
	if err != nil {
		log.Debug().Err(err).Msg("request rejected")
		reply, _ := json.Marshal(communication.NewErrorResponse(err))
		return reply
	}
	reply, _ := json.Marshal(suggestion)
	return reply
}

func (b *Broker) answer(data []byte) (searcher.Suggestion, error) {
	var req communication.SuggestRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return searcher.Suggestion{}, fmt.Errorf("%w: %v", placement.ErrMalformedInput, err)
	}

	if req.Session == "" {
		if req.Another {
			return searcher.Suggestion{}, engine.ErrNoPosition
		}
		gs, err := placement.Translate(req.Input)
		if err != nil {
			return searcher.Suggestion{}, err
		}
		suggestion, _ := b.searcher.Suggest(gs, searcher.NoMove)
		return suggestion, nil
	}

	session := b.sessions.GetOrCreate(req.Session)
	if req.Another {
		return session.Another()
	}
	return session.Suggest(req.Input)
}

// Request asks an advisor listening on subject for a suggestion.
func Request(ctx context.Context, nc *nats.Conn, subject string, req communication.SuggestRequest) (searcher.Suggestion, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return searcher.Suggestion{}, fmt.Errorf("encode request: %w", err)
	}
	msg, err := nc.RequestWithContext(ctx, subject, data)
	if err != nil {
		return searcher.Suggestion{}, fmt.Errorf("request %s: %w", subject, err)
	}
	return decodeReply(msg.Data)
}

func decodeReply(data []byte) (searcher.Suggestion, error) {
	var reply struct {
		searcher.Suggestion
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(data, &reply); err != nil {
		return searcher.Suggestion{}, fmt.Errorf("decode reply: %w", err)
	}
	if reply.Error != "" {
		return searcher.Suggestion{}, communication.ErrorResponse{Error: reply.Error, Code: reply.Code}.Err()
	}
	return reply.Suggestion, nil
}
