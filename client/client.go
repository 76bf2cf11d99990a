// Package client talks to the restaurant backend's REST API. The backend owns
// every business rule; this package only moves JSON and classifies failures.
package client

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

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// TokenSource supplies the bearer token and is told when the backend refuses it.
type TokenSource interface {
	Token() (string, error)
	ClearToken() error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method         string
	path           string
	query          url.Values
	body           interface{}
	contentType    string
	raw            io.Reader
	auth           bool
	idempotencyKey string
}

func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	body := r.raw
	contentType := r.contentType
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", r.idempotencyKey)
	}
	if r.auth {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("read session token: %w", err)
		}
		if token == "" {
			return ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		utils.ErrorLogger.Printf("Backend %s %s failed (request %s): %v", r.method, r.path, requestID, err)
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrNetwork, r.method, r.path, err)
	}
	utils.InfoLogger.Debugf("Backend %s %s -> %d in %v (request %s)", r.method, r.path, resp.StatusCode, time.Since(start), requestID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Method: r.method, Path: r.path}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Error
			if apiErr.Message == "" {
				apiErr.Message = eb.Message
			}
		}
		if r.auth && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			c.forceLogout()
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		utils.ErrorLogger.Printf("Backend %s %s answered %d with an unreadable body (request %s): %v", r.method, r.path, resp.StatusCode, requestID, err)
		return &DecodeError{Method: r.method, Path: r.path, Body: data, Err: err}
	}
	return nil
}

func (c *Client) forceLogout() {
	utils.InfoLogger.Println("Backend refused the session token, clearing it")
	if err := c.tokens.ClearToken(); err != nil {
		utils.ErrorLogger.Printf("Error clearing session token: %v", err)
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	return c.do(ctx, request{method: method, path: path, body: body, auth: true}, out)
}

func escape(id string) string {
	return url.PathEscape(id)
}
