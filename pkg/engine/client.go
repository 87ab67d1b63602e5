package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/pkg/coil"
)

// ErrNotJSON is returned when a success response is not a JSON document.
var ErrNotJSON = errors.New("engine: response is not JSON")

// ErrResponseTooLarge is returned when a success response exceeds
// Options.MaxBodySize.
var ErrResponseTooLarge = errors.New("engine: response too large")

// StatusError reports a non-2xx response. Body holds the engine-defined
// error payload, truncated to the configured limit.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	text := strings.TrimSpace(string(e.Body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	if text == "" {
		return fmt.Sprintf("engine: status %d", e.Code)
	}
	return fmt.Sprintf("engine: status %d: %s", e.Code, text)
}

// StatusCode implements the HTTP error contract used by handlers.
func (e *StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusBadGateway
	}
	return e.Code
}

// Service is the contract consumed by handlers and the orchestrator.
type Service interface {
	ListCoils(ctx context.Context) (json.RawMessage, error)
	CreateCoil(ctx context.Context, body json.RawMessage) (json.RawMessage, error)
	StartJob(ctx context.Context, req coil.Request) ([]byte, error)
}

// Client is the HTTP implementation of Service.
type Client struct {
	opts Options
}

var _ Service = (*Client)(nil)

// New builds a Client.
func New(fns ...Option) *Client {
	return &Client{opts: newOptions(fns...)}
}

// BaseURL returns the resolved service root.
func (c *Client) BaseURL() string {
	return c.opts.BaseURL
}

// ListCoils fetches the coil catalog.
func (c *Client) ListCoils(ctx context.Context) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, "/Coils", nil, false)
	if err != nil {
		return nil, fmt.Errorf("engine: list coils: %w", err)
	}
	return jsonBody(body)
}

// CreateCoil posts a catalog entry.
func (c *Client) CreateCoil(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = json.RawMessage("{}")
	}
	body, err := c.do(ctx, http.MethodPost, "/Coils", payload, false)
	if err != nil {
		return nil, fmt.Errorf("engine: create coil: %w", err)
	}
	return jsonBody(body)
}

// StartJob submits a calculation and returns the raw result document.
func (c *Client) StartJob(ctx context.Context, req coil.Request) ([]byte, error) {
	if req.OptionsData == nil {
		req.OptionsData = coil.DefaultOptionsData
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("engine: encode job: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/StartJob", payload, true)
	if err != nil {
		return nil, fmt.Errorf("engine: start job: %w", err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, authenticated bool) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	url := c.opts.BaseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.opts.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.opts.UserAgent)
	}
	if authenticated && c.opts.APIKey != "" {
		httpReq.Header.Set(APIKeyHeader, c.opts.APIKey)
	}

	started := time.Now()
	resp, err := c.opts.HTTPClient.Do(httpReq)
	if err != nil {
		c.opts.Logger.Warn("engine request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	oversized := int64(len(body)) > c.opts.MaxBodySize
	if oversized {
		body = body[:c.opts.MaxBodySize]
	}
	c.opts.Logger.Debug("engine response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: body}
	}
	if oversized {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.opts.MaxBodySize)
	}
	return body, nil
}

func jsonBody(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(trimmed) {
		return nil, ErrNotJSON
	}
	return json.RawMessage(trimmed), nil
}
