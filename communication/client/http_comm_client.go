package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"klondike/communication"
	"klondike/engine"
	"klondike/placement"
	"klondike/searcher"
)

const requestTimeout = 10 * time.Second

// ErrNoSession is returned by calls that need a session before Open.
var ErrNoSession = errors.New("client has no session")

type Option func(c *Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSession binds the client to an existing session id.
func WithSession(id string) Option {
	return func(c *Client) {
		c.session = id
	}
}

// Client talks to the advisor's HTTP server. Without a session every
// Suggest is answered from the top of the cascade.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    string
}

var _ communication.Advisor = (*Client)(nil)

func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Session() string {
	return c.session
}

// Open creates a session on the server and binds the client to it.
func (c *Client) Open(ctx context.Context) error {
	var resp communication.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/sessions", nil, &resp); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	c.session = resp.ID
	return nil
}

// Close deletes the bound session.
func (c *Client) Close(ctx context.Context) error {
	if c.session == "" {
		return nil
	}
	if err := c.do(ctx, http.MethodDelete, c.sessionPath(""), nil, nil); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	c.session = ""
	return nil
}

func (c *Client) Suggest(ctx context.Context, in placement.Input) (searcher.Suggestion, error) {
	path := "/suggest"
	if c.session != "" {
		path = c.sessionPath("/suggest")
	}
	var s searcher.Suggestion
	if err := c.do(ctx, http.MethodPost, path, in, &s); err != nil {
		return searcher.Suggestion{}, err
	}
	return s, nil
}

func (c *Client) Another(ctx context.Context) (searcher.Suggestion, error) {
	if c.session == "" {
		return searcher.Suggestion{}, ErrNoSession
	}
	var s searcher.Suggestion
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/another"), nil, &s); err != nil {
		return searcher.Suggestion{}, err
	}
	return s, nil
}

func (c *Client) Reset(ctx context.Context) error {
	if c.session == "" {
		return ErrNoSession
	}
	return c.do(ctx, http.MethodPost, c.sessionPath("/reset"), nil, nil)
}

func (c *Client) Status(ctx context.Context) (communication.StatusResponse, error) {
	var status communication.StatusResponse
	err := c.do(ctx, http.MethodGet, "/status", nil, &status)
	return status, err
}

func (c *Client) sessionPath(suffix string) string {
	return "/sessions/" + c.session + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return responseError(resp)
	}
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseError turns an error reply back into the advisor's sentinel
// errors so callers can use errors.Is across the wire.
func responseError(resp *http.Response) error {
	var body communication.ErrorResponse
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(data))
	}
	if body.Code != "" {
		return body.Err()
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", placement.ErrMalformedInput, body.Error)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", engine.ErrUnknownSession, body.Error)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", engine.ErrNoPosition, body.Error)
	default:
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}
}
