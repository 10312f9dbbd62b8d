package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Backend endpoint paths.
const (
	quizPath           = "/api/quiz/"
	progressPath       = "/api/progress/complete"
	roadmapsPath       = "/api/roadmaps/"
	knowledgeGraphPath = "/api/knowledge-graph/"
)

// Client talks to the learning backend. Every call is attempted exactly once.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout. Zero leaves requests unbounded.
// The timeout applies to a copy of the http.Client, never the one passed to
// WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetQuiz fetches the question set for a roadmap item.
func (c *Client) GetQuiz(ctx context.Context, itemID int) (*QuizPayload, error) {
	path := quizPath + strconv.Itoa(itemID)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if err := validateQuizPayload(body); err != nil {
		return nil, &InvalidPayloadError{Path: path, Err: err}
	}

	var payload QuizPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &InvalidPayloadError{Path: path, Err: err}
	}
	return &payload, nil
}

// CompleteProgress reports a finished quiz.
func (c *Client) CompleteProgress(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, progressPath, reqBody)
	if err != nil {
		return nil, err
	}

	var resp CompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &InvalidPayloadError{Path: progressPath, Err: err}
	}
	return &resp, nil
}

// ListRoadmaps fetches the full roadmap catalog.
func (c *Client) ListRoadmaps(ctx context.Context) ([]Roadmap, error) {
	body, err := c.do(ctx, http.MethodGet, roadmapsPath, nil)
	if err != nil {
		return nil, err
	}

	var roadmaps []Roadmap
	if err := json.Unmarshal(body, &roadmaps); err != nil {
		return nil, &InvalidPayloadError{Path: roadmapsPath, Err: err}
	}
	return roadmaps, nil
}

// KnowledgeGraph fetches the topic/title graph.
func (c *Client) KnowledgeGraph(ctx context.Context) (*Graph, error) {
	body, err := c.do(ctx, http.MethodGet, knowledgeGraphPath, nil)
	if err != nil {
		return nil, err
	}

	var g Graph
	if err := json.Unmarshal(body, &g); err != nil {
		return nil, &InvalidPayloadError{Path: knowledgeGraphPath, Err: err}
	}
	return &g, nil
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, reqBody []byte) ([]byte, error) {
	var rd io.Reader
	if reqBody != nil {
		rd = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", path, err)
	}
	return body, nil
}
