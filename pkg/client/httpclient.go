package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// HttpClient is a small JSON client for the drivent services, used by the
// integration suite and by operators poking a running service.
type HttpClient struct {
	BaseURL string
	http    *http.Client
	headers http.Header
}

func NewHttpClient(baseURL string) *HttpClient {
	return &HttpClient{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: defaultRequestTimeout},
		headers: make(http.Header),
	}
}

// WithHeader returns a copy of the client that sends name: value on every request.
func (c *HttpClient) WithHeader(name, value string) *HttpClient {
	clone := *c
	clone.headers = maps.Clone(c.headers)
	clone.headers.Set(name, value)
	return &clone
}

func (c *HttpClient) WithToken(token string) *HttpClient {
	return c.WithHeader("Authorization", "Bearer "+token)
}

// Response is an http.Response whose body has already been read.
type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (c *HttpClient) GET(ctx context.Context, path string) (*Response, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

func (c *HttpClient) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

func (c *HttpClient) PUT(ctx context.Context, path string, body any) (*Response, error) {
	return c.send(ctx, http.MethodPut, path, body)
}

func (c *HttpClient) send(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, payload)
	if err != nil {
		return nil, err
	}
	for name, values := range c.headers {
		req.Header[name] = values
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	return &Response{Response: resp, Body: raw}, nil
}

// WaitForHealthy polls /health until it answers 200, ctx ends or maxWait passes.
func (c *HttpClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		if resp, err := c.GET(ctx, "/health"); err == nil && resp.StatusCode == http.StatusOK {
			return nil
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%s not healthy after %s", c.BaseURL, maxWait)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// GetErrorMessage pulls the message out of an error response body.
func GetErrorMessage(resp *Response) string {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return string(resp.Body)
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Code
}
