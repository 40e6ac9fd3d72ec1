// Package api implements the task repository on top of the Task REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
	"mtodo/internal/infrastructure/logging"
)

const (
	// DefaultTimeout bounds every API call when no timeout is configured
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request uuid for correlating logs
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 4 << 10
)

// Client implements repository.TaskRepository over HTTP/JSON
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *logging.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, httpClient *http.Client, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: httpClient,
		timeout:    DefaultTimeout,
		userAgent:  "mtodo",
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewHTTPClient returns the HTTP client for the API. With a token every
// request carries it as a bearer token.
func NewHTTPClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return &http.Client{}
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}

// List implements repository.TaskRepository.
func (c *Client) List(ctx context.Context, criteria repository.ListCriteria) (*repository.TaskPage, error) {
	q := url.Values{}
	if criteria.Page > 0 {
		q.Set("page", strconv.Itoa(criteria.Page))
	}
	if criteria.Limit > 0 {
		q.Set("limit", strconv.Itoa(criteria.Limit))
	}
	if criteria.Completed != nil {
		q.Set("completed", strconv.FormatBool(*criteria.Completed))
	}
	if s := strings.TrimSpace(criteria.Search); s != "" {
		q.Set("search", s)
	}
	if criteria.DueFrom != nil {
		q.Set("dueDateFrom", criteria.DueFrom.String())
	}
	if criteria.DueTo != nil {
		q.Set("dueDateTo", criteria.DueTo.String())
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toPage(criteria)
}

// Create implements repository.TaskRepository.
func (c *Client) Create(ctx context.Context, draft repository.TaskDraft) (*entity.Task, error) {
	var resp taskJSON
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, draftBody(draft), &resp); err != nil {
		return nil, err
	}
	return resp.toEntity()
}

// Update implements repository.TaskRepository.
func (c *Client) Update(ctx context.Context, id string, patch repository.TaskPatch) (*entity.Task, error) {
	var resp taskJSON
	if err := c.do(ctx, http.MethodPatch, taskPath(id), nil, patchBody(patch), &resp); err != nil {
		return nil, err
	}
	return resp.toEntity()
}

// Delete implements repository.TaskRepository.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// do sends one request and decodes a 2xx JSON body into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, requestID)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return wrapError(ctx.Err())
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response, requestID string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var parsed errorResponse
	if json.Unmarshal(data, &parsed) == nil {
		apiErr.Message = parsed.Message
		if apiErr.Message == "" {
			apiErr.Message = parsed.Error
		}
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

// Compile-time check
var _ repository.TaskRepository = (*Client)(nil)
