package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// doJSON POSTs in as JSON to path and decodes a 2xx response into out.
func (c *Client) doJSON(ctx context.Context, path string, in, out any) error {
	u := c.BaseURL + path
	reqID := uuid.NewString()
	start := time.Now()

	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	res, err := hc.Do(req)
	if err != nil {
		c.logCall(ctx, reqID, path, 0, start, err)
		return fmt.Errorf("POST %s: %w", u, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.logCall(ctx, reqID, path, res.StatusCode, start, err)
		return fmt.Errorf("POST %s: read body: %w", u, err)
	}

	if res.StatusCode/100 != 2 {
		apiErr := parseAPIError(res.StatusCode, body)
		c.logCall(ctx, reqID, path, res.StatusCode, start, apiErr)
		return apiErr
	}

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			err = fmt.Errorf("decode response: %w (body=%s)", err, truncateBody(body))
			c.logCall(ctx, reqID, path, res.StatusCode, start, err)
			return err
		}
	}

	c.logCall(ctx, reqID, path, res.StatusCode, start, nil)
	return nil
}

func (c *Client) logCall(ctx context.Context, reqID, path string, status int, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("request_id", reqID),
		slog.String("route", path),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	c.Logger.LogAttrs(ctx, slog.LevelDebug, "service call", attrs...)
}

func truncateBody(b []byte) string {
	const limit = 256
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}
