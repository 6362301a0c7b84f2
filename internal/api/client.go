// Package api is the typed HTTP client for the n8n-render backend.
//
// All methods take a context and return either a decoded response or an
// error. Non-2xx responses become *Error; everything else surfaces as the
// transport error unchanged. Message derives the single user-facing error
// string from either.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

var validate = validator.New()

// Client talks to the backend's /api surface. One Client is shared across
// goroutines: the TUI issues its calls from concurrent commands, so
// HTTPClient must be in place before the first request and is never
// written afterwards.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	fallback sync.Once
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Error wraps a non-2xx backend response. Detail is the structured message
// from the body's "detail" field when the backend provided one.
type Error struct {
	StatusCode int
	Detail     string
	Body       string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Message returns the display text for a failed call: the structured detail
// when present, else the transport error text. This is the sole error-text
// derivation rule for the UI.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Health probes GET /api/ and returns the liveness message.
func (c *Client) Health(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodGet, "api/", nil, &resp)
	return resp.Message, err
}

// Design asks the planner for a contract, fixtures, and assertions.
func (c *Client) Design(ctx context.Context, goal string) (*DesignResponse, error) {
	body := map[string]any{"goal": goal}
	var resp DesignResponse
	if err := c.do(ctx, http.MethodPost, "api/design", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestRun executes the contract's test. useN8N selects the real execution
// mode; connectionID references a saved credential and may be empty.
func (c *Client) TestRun(ctx context.Context, contractID string, useN8N bool, connectionID string) (*Run, error) {
	body := map[string]any{
		"workflow_contract_id": contractID,
		"use_n8n":              useN8N,
	}
	if connectionID != "" {
		body["n8n_connection_id"] = connectionID
	}
	var resp struct {
		Run Run `json:"run"`
	}
	if err := c.do(ctx, http.MethodPost, "api/test-run", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Run, nil
}

// SaveConnection transmits an n8n credential once and returns the stored
// reference. The input is validated locally before the secret leaves the
// process.
func (c *Client) SaveConnection(ctx context.Context, in ConnectionInput) (*ConnectionRef, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid connection: %w", err)
	}
	var resp ConnectionRef
	if err := c.do(ctx, http.MethodPost, "api/n8n/connections", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Artifacts lists the artifacts produced by a run.
func (c *Client) Artifacts(ctx context.Context, runID string) ([]Artifact, error) {
	var resp struct {
		Artifacts []Artifact `json:"artifacts"`
	}
	endpoint := fmt.Sprintf("api/runs/%s/artifacts", url.PathEscape(runID))
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Artifacts, nil
}

// WorkflowGraph fetches the generated workflow's node/connection descriptor.
// Only real-mode runs have one; mock runs yield a backend error the caller
// treats as absent.
func (c *Client) WorkflowGraph(ctx context.Context, runID string) (*WorkflowGraph, error) {
	var resp WorkflowGraph
	endpoint := fmt.Sprintf("api/runs/%s/workflow", url.PathEscape(runID))
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadArtifact fetches one artifact's raw content.
func (c *Client) DownloadArtifact(ctx context.Context, artifactID string) ([]byte, error) {
	endpoint := fmt.Sprintf("api/artifacts/%s", url.PathEscape(artifactID))
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, readError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := c.newRequest(ctx, method, endpoint, &buf)
	if err != nil {
		return err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return readError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	u := strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// httpClient backfills a zero-value Client exactly once; for clients from
// New this is a plain read.
func (c *Client) httpClient() *http.Client {
	c.fallback.Do(func() {
		if c.HTTPClient == nil {
			c.HTTPClient = &http.Client{Timeout: defaultTimeout}
		}
	})
	return c.HTTPClient
}

// readError builds an *Error from a non-2xx response, extracting the
// structured detail field when the body carries one.
func readError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	apiErr := &Error{StatusCode: resp.StatusCode, Body: string(b)}
	var detail struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(b, &detail) == nil {
		apiErr.Detail = detail.Detail
	}
	return apiErr
}
