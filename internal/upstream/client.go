// Package upstream is the REST client for the CRM backend. It owns bearer
// auth header construction, idempotency keys for creates, and decoding of
// the backend's structured error bodies.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/chatcart/crm-platform/internal/workspace"
	"github.com/chatcart/crm-platform/pkg/logger"
	"github.com/chatcart/crm-platform/pkg/metrics"
)

// TokenSource supplies the bearer token for each request. An empty token
// sends the request unauthenticated; the server is expected to reject it.
type TokenSource func() string

// StaticToken returns a TokenSource for a fixed token.
func StaticToken(token string) TokenSource {
	return func() string { return token }
}

// Client calls the upstream CRM API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	logger  *logger.Logger
}

// New creates a client for the given base URL.
func New(baseURL string, token TokenSource, log *logger.Logger) *Client {
	if token == nil {
		token = StaticToken("")
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
		logger:  log,
	}
}

// NewIdempotencyKey builds the per-attempt create key. Retrying the same
// logical attempt must reuse the key so the server does not double-create.
func NewIdempotencyKey(conversationID string, at time.Time) string {
	return fmt.Sprintf("create-%s-%d", conversationID, at.UnixMilli())
}

// ListResult is the paginated list envelope every collection endpoint
// returns.
type ListResult[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// ListParams are the query parameters shared by the list endpoints.
type ListParams struct {
	Status     string
	AssignedTo string
	Query      string
	Sort       string
	Page       int
	PageSize   int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.AssignedTo != "" && p.AssignedTo != "any" {
		q.Set("assignedTo", p.AssignedTo)
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(method, path, "error", time.Since(start).Seconds())
		return fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstreamRequest(method, path, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError prefers the backend's structured {code, message} body and
// falls back to a generic transport error.
func (c *Client) decodeError(method, path string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var structured workspace.APIError
	if err := json.Unmarshal(data, &structured); err == nil && structured.Code != "" && structured.Message != "" {
		structured.HTTPStatus = resp.StatusCode
		return &structured
	}

	c.logger.Warn("upstream request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return fmt.Errorf("upstream %s %s: status %d", method, path, resp.StatusCode)
}

func getList[T any](ctx context.Context, c *Client, path string, p ListParams) (*ListResult[T], error) {
	var out ListResult[T]
	if err := c.do(ctx, http.MethodGet, path, p.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
