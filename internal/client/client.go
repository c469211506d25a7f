// Package client is the HTTP client for the askql translation service.
//
// The service exposes three JSON routes: /generate-sql turns a description
// into a statement, /run-sql executes statements and /explain describes a
// statement. Calls are single request/response exchanges: there are no
// retries, no authentication and no timeout beyond what the supplied
// http.Client enforces.
package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/askql/internal/result"
)

// DefaultBaseURL is the service origin used when none is configured.
// It can be replaced at build time:
//
//	go build -ldflags "-X github.com/leapstack-labs/askql/internal/client.DefaultBaseURL=http://sql.internal:8000"
var DefaultBaseURL = "http://127.0.0.1:8000"

// Service routes.
const (
	RouteGenerate = "/generate-sql"
	RouteRun      = "/run-sql"
	RouteExplain  = "/explain"
)

// Client talks to the translation service.
type Client struct {
	// BaseURL is the service origin, without a trailing slash.
	BaseURL string

	// HTTPClient performs the requests. http.DefaultClient semantics apply
	// when nil.
	HTTPClient *http.Client

	// UserAgent is sent with each request when non-empty.
	UserAgent string

	// Logger receives one debug record per call. Never nil after New.
	Logger *slog.Logger
}

// New constructs a Client with defaults, then applies opts.
func New(opts ...Option) *Client {
	c := &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{},
		UserAgent:  "askql",
		Logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Query string `json:"query"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type runResponse struct {
	Result []result.Entry `json:"result"`
}

type explainResponse struct {
	Explanation result.Explanation `json:"explanation"`
}

// GenerateSQL asks the service to translate prompt into a statement.
func (c *Client) GenerateSQL(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	if err := c.doJSON(ctx, RouteGenerate, generateRequest{Prompt: prompt}, &out); err != nil {
		return "", err
	}
	return out.Query, nil
}

// RunSQL asks the service to execute query. Failures of individual
// statements are reported inside the returned entries, not as an error.
func (c *Client) RunSQL(ctx context.Context, query string) ([]result.Entry, error) {
	var out runResponse
	if err := c.doJSON(ctx, RouteRun, queryRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// Explain asks the service to describe query.
func (c *Client) Explain(ctx context.Context, query string) (result.Explanation, error) {
	var out explainResponse
	if err := c.doJSON(ctx, RouteExplain, queryRequest{Query: query}, &out); err != nil {
		return result.Explanation{}, err
	}
	return out.Explanation, nil
}
