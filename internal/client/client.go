// Package client talks to the transaction API and keeps a local state
// cache for terminal presentation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
)

// Client is an HTTP client for the transaction API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchTransactions retrieves the full list, newest first.
func (c *Client) FetchTransactions(ctx context.Context) ([]core.Transaction, error) {
	var list []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/expenses", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddTransaction creates a transaction and returns the stored record.
func (c *Client) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	var created core.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/expenses", tx, &created); err != nil {
		return core.Transaction{}, err
	}
	return created, nil
}

// DeleteTransaction removes a transaction by ID.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/expenses/"+id, nil, nil)
}

// FetchStats retrieves the aggregate summary.
func (c *Client) FetchStats(ctx context.Context) (core.Stats, error) {
	var stats core.Stats
	if err := c.do(ctx, http.MethodGet, "/api/expenses/stats", nil, &stats); err != nil {
		return core.Stats{}, err
	}
	return stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError carries the server's {"error": message} payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
}
