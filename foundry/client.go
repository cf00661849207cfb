package foundry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentbridge/agentbridge"
	"github.com/agentbridge/agentbridge/auth"
)

const defaultPollInterval = 1500 * time.Millisecond

// Client calls the remote Agents REST API. It is safe for concurrent use;
// thread and run resources are owned by individual chat turns, never
// shared.
type Client struct {
	cfg          Config
	baseURL      string
	tokens       auth.TokenProvider
	httpClient   *http.Client
	pollInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL overrides the base URL derived from the config, used by
// tests.
func WithBaseURL(u string) Option {
	return func(client *Client) {
		client.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithPollInterval sets the delay between run status checks.
func WithPollInterval(d time.Duration) Option {
	return func(client *Client) {
		client.pollInterval = d
	}
}

// NewClient creates a client for the configured project using the given
// token provider for every call.
func NewClient(cfg Config, tokens auth.TokenProvider, opts ...Option) *Client {
	c := &Client{
		cfg:          cfg,
		baseURL:      cfg.BaseURL(),
		tokens:       tokens,
		httpClient:   http.DefaultClient,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateThread creates a fresh conversation thread and returns its id.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	var thread Thread
	if err := c.do(ctx, "create thread", http.MethodPost, "/threads", map[string]any{}, &thread); err != nil {
		return "", err
	}
	return thread.ID, nil
}

// PostMessage adds the user's text to the thread. The acknowledgement body
// is ignored beyond success.
func (c *Client) PostMessage(ctx context.Context, threadID, text string) error {
	body := map[string]any{"role": "user", "content": text}
	return c.do(ctx, "post message", http.MethodPost, "/threads/"+threadID+"/messages", body, nil)
}

// StartRun starts the configured assistant on the thread and returns the
// run id.
func (c *Client) StartRun(ctx context.Context, threadID string) (string, error) {
	body := map[string]any{"assistant_id": c.cfg.AssistantID}
	var run Run
	if err := c.do(ctx, "start run", http.MethodPost, "/threads/"+threadID+"/runs", body, &run); err != nil {
		return "", err
	}
	return run.ID, nil
}

// GetRun fetches the current status of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (Run, error) {
	var run Run
	err := c.do(ctx, "get run", http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &run)
	return run, err
}

// ListMessages returns the thread's messages in the service's order,
// newest first.
func (c *Client) ListMessages(ctx context.Context, threadID string) (MessageList, error) {
	var list MessageList
	err := c.do(ctx, "list messages", http.MethodGet, "/threads/"+threadID+"/messages", nil, &list)
	return list, err
}

// do performs one authenticated call. Any non-2xx response becomes a
// RemoteError carrying the status and a body excerpt.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return &agentbridge.RemoteError{Op: op, Message: "acquire token", Cause: err}
	}

	u := c.baseURL + path + "?api-version=" + url.QueryEscape(c.cfg.APIVersion)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &agentbridge.RemoteError{Op: op, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &agentbridge.RemoteError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(excerpt)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &agentbridge.RemoteError{Op: op, Message: "parse response", Cause: err}
		}
	}
	return nil
}
