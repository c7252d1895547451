package communication

import (
	"context"
	"errors"

	"klondike/engine"
	"klondike/placement"
	"klondike/searcher"
)

// Advisor hands out move suggestions for one table. Asking twice for the
// same position yields the next best move.
type Advisor interface {
	Suggest(ctx context.Context, in placement.Input) (searcher.Suggestion, error)
	Another(ctx context.Context) (searcher.Suggestion, error)
	Reset(ctx context.Context) error
}

// SuggestRequest is the message body used by the broker. Session may be
// empty for a one-off suggestion.
type SuggestRequest struct {
	Session string          `json:"session,omitempty"`
	Another bool            `json:"another,omitempty"`
	Input   placement.Input `json:"input"`
}

type SessionResponse struct {
	ID string `json:"id"`
}

type StatusResponse struct {
	Sessions int    `json:"sessions"`
	Uptime   string `json:"uptime"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes sent with an ErrorResponse.
const (
	CodeMalformedInput   = "malformed_input"
	CodeInvalidSlotIndex = "invalid_slot_index"
	CodeUnknownSession   = "unknown_session"
	CodeNoPosition       = "no_position"
)

// codes is checked in order; a slot error is also wrapped as malformed
// input by some callers, so it comes first.
var codes = []struct {
	code string
	err  error
}{
	{CodeInvalidSlotIndex, placement.ErrInvalidSlotIndex},
	{CodeMalformedInput, placement.ErrMalformedInput},
	{CodeUnknownSession, engine.ErrUnknownSession},
	{CodeNoPosition, engine.ErrNoPosition},
}

// NewErrorResponse encodes err with the code of the advisor error it wraps.
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			resp.Code = c.code
			break
		}
	}
	return resp
}

// Err turns the response back into an error that matches the original
// sentinel with errors.Is. Unknown codes give a plain error.
func (r ErrorResponse) Err() error {
	for _, c := range codes {
		if r.Code == c.code {
			return &remoteError{msg: r.Error, err: c.err}
		}
	}
	return errors.New(r.Error)
}

// remoteError keeps the message as sent and unwraps to the sentinel.
type remoteError struct {
	msg string
	err error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.err }
