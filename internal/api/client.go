// Package api implements the transport adapter for the Trackside operations
// API. It resolves relative paths against a configurable base URL, speaks the
// {data, success, message, timestamp} envelope, and normalizes every failure
// into a *TransportError. A single attempt per call: retries, timeouts, and
// backoff belong to collaborators, not this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/myrjola/trackside/internal/errors"
)

// TransportError is the uniform failure shape for non-2xx responses and
// network-level failures. StatusCode is zero when the request never reached
// the server.
type TransportError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport error: %s", e.Message)
	}
	return fmt.Sprintf("transport error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
}

// envelope is the common response wrapper documented in the API contract.
// Data is left raw so callers can decode it into their own types.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Error     string          `json:"error,omitempty"`
	Code      string          `json:"code,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Client issues JSON requests against the operations API. It trusts the
// server's payloads; there is no runtime schema validation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:4000/api". A trailing slash is tolerated.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger.With("source", "api.Client"),
	}
}

// Get issues a GET request and decodes the envelope's data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, nil)
}

// Post issues a POST request with a JSON body and decodes the envelope's data into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out, nil)
}

// Put issues a PUT request with a JSON body and decodes the envelope's data into out.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out, nil)
}

// Delete issues a DELETE request and decodes the envelope's data into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, nil)
}

// Do issues a single request. The path's leading slash is optional. The
// default Content-Type header is applied first so caller-supplied headers win
// on conflict. out may be nil when the caller does not need the data.
func (c *Client) Do(ctx context.Context, method, path string, body any, out any, header http.Header) error {
	url := c.baseURL + normalizePath(path)

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body", slog.String("path", path))
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return errors.Wrap(err, "create request", slog.String("url", url))
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		transportErr := &TransportError{StatusCode: 0, Code: "network_error", Message: err.Error()}
		c.logFailure(ctx, method, url, transportErr)
		return transportErr
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "close response body", errors.SlogError(closeErr))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		transportErr := &TransportError{StatusCode: resp.StatusCode, Code: "read_error", Message: err.Error()}
		c.logFailure(ctx, method, url, transportErr)
		return transportErr
	}

	var env envelope
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Failure envelopes carry error and code; tolerate bodies that don't parse.
		transportErr := &TransportError{StatusCode: resp.StatusCode, Code: "http_error", Message: http.StatusText(resp.StatusCode)}
		if unmarshalErr := json.Unmarshal(respBody, &env); unmarshalErr == nil {
			if env.Error != "" {
				transportErr.Message = env.Error
			}
			if env.Code != "" {
				transportErr.Code = env.Code
			}
		}
		c.logFailure(ctx, method, url, transportErr)
		return transportErr
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(respBody, &env); err != nil {
		transportErr := &TransportError{StatusCode: resp.StatusCode, Code: "decode_error", Message: err.Error()}
		c.logFailure(ctx, method, url, transportErr)
		return transportErr
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err = json.Unmarshal(env.Data, out); err != nil {
		transportErr := &TransportError{StatusCode: resp.StatusCode, Code: "decode_error", Message: err.Error()}
		c.logFailure(ctx, method, url, transportErr)
		return transportErr
	}

	return nil
}

func (c *Client) logFailure(ctx context.Context, method, url string, transportErr *TransportError) {
	c.logger.LogAttrs(ctx, slog.LevelError, "request failed",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", transportErr.StatusCode),
		slog.String("code", transportErr.Code),
		slog.String("message", transportErr.Message))
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}
