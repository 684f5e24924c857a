// Package httpapi is the HTTP implementation of employee.API.
package httpapi

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

	"nathanbeddoewebdev/staffdesk/internal/employee"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 30 * time.Second
	maxErrorBody    = 64 << 10
	requestIDHeader = "X-Request-ID"
)

// Compile-time check that Client satisfies employee.API.
var _ employee.API = (*Client)(nil)

// Client talks to the staff API over JSON.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger
	newID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the API's error response shape.
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// recordEnvelope accepts either a bare record or one wrapped in "user" or
// "data".
type recordEnvelope struct {
	employee.Record
	User *employee.Record `json:"user"`
	Data *employee.Record `json:"data"`
}

func (e recordEnvelope) record() *employee.Record {
	switch {
	case e.User != nil:
		return e.User
	case e.Data != nil:
		return e.Data
	}
	rec := e.Record
	return &rec
}

// List returns users with the employee role.
func (c *Client) List(ctx context.Context) ([]employee.Record, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users?role="+url.QueryEscape(employee.RoleEmployee), nil, &raw); err != nil {
		return nil, err
	}

	var records []employee.Record
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}
	var wrapped struct {
		Users []employee.Record `json:"users"`
		Data  []employee.Record `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("staff api: failed to decode employee list: %w", err)
	}
	if wrapped.Users != nil {
		return wrapped.Users, nil
	}
	return wrapped.Data, nil
}

// Create adds a new employee.
func (c *Client) Create(ctx context.Context, p employee.CreatePayload) (*employee.Record, error) {
	var out recordEnvelope
	if err := c.do(ctx, http.MethodPost, "/users/employee", p, &out); err != nil {
		return nil, err
	}
	return out.record(), nil
}

// Update replaces the editable fields of an existing employee.
func (c *Client) Update(ctx context.Context, p employee.UpdatePayload) (*employee.Record, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, fmt.Errorf("staff api: employee ID is required")
	}
	var out recordEnvelope
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(p.ID), p, &out); err != nil {
		return nil, err
	}
	rec := out.record()
	if rec.ID == "" {
		rec.ID = p.ID
	}
	return rec, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("staff api: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("staff api: failed to build request: %w", err)
	}
	reqID := c.newID()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return fmt.Errorf("staff api: request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, reqID)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("staff api: failed to decode response: %w", err)
	}
	return nil
}

// decodeError maps a non-2xx response to a typed error. 400 and 422 with
// field messages become a ValidationError.
func decodeError(resp *http.Response, reqID string) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	_ = json.Unmarshal(data, &body)
	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" && len(data) > 0 && !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		msg = strings.TrimSpace(string(data))
	}

	if (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity) && len(body.Errors) > 0 {
		fields := make(map[employee.Field]string, len(body.Errors))
		for k, v := range body.Errors {
			fields[employee.Field(k)] = v
		}
		if msg == "" {
			msg = "employee rejected by server"
		}
		return &employee.ValidationError{Message: msg, Fields: fields}
	}

	return employee.NewServerError(resp.StatusCode, msg, reqID)
}
