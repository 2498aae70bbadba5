package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// RequestOption adjusts a single request made by the JSON helpers.
type RequestOption func(*http.Request)

// WithBearer authorizes the request with a bearer token.
func WithBearer(token string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// WithHeader sets one header on the request.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// maxErrorBody bounds how much of an error response body is kept for the
// error message.
const maxErrorBody = 4 << 10

// GetJSON issues a GET against the endpoint (relative to the base URL) and
// decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, out, opts...)
}

// PostJSON issues a POST with a JSON body and decodes the response into
// out. out may be nil when the response body is irrelevant.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out, opts...)
}

// PutJSON issues a PUT with a JSON body and decodes the response into out.
func (c *Client) PutJSON(ctx context.Context, endpoint string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPut, endpoint, body, out, opts...)
}

// PatchJSON issues a PATCH with a JSON body and decodes the response into
// out.
func (c *Client) PatchJSON(ctx context.Context, endpoint string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPatch, endpoint, body, out, opts...)
}

// DeleteJSON issues a DELETE and decodes the response into out.
func (c *Client) DeleteJSON(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, out, opts...)
}

// HealthCheck reports whether the service behind the base URL answers its
// /health endpoint.
func (c *Client) HealthCheck(ctx context.Context) bool {
	var payload json.RawMessage
	return c.GetJSON(ctx, "/health", &payload) == nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any, opts ...RequestOption) error {
	url := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return wrapErr(method, url, 0, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return wrapErr(method, url, 0, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return wrapErr(method, redact(resp.Request.URL), resp.StatusCode,
			errors.New(string(bytes.TrimSpace(excerpt))))
	}

	if out == nil {
		drainAndClose(resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return wrapErr(method, redact(resp.Request.URL), 0, err)
	}
	return nil
}
