package dapnet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// fetchOne GETs path and decodes a single T.
func fetchOne[T any](ctx context.Context, c *Client, path string) (T, bool, error) {
	var v T
	found, err := c.get(ctx, path, &v)
	if err != nil || !found {
		var zero T
		return zero, found, err
	}
	return v, true, nil
}

// fetchNamed is fetchOne for a single named resource of a collection.
func fetchNamed[T any](ctx context.Context, c *Client, collection, name string) (T, bool, error) {
	path, err := resourcePath(collection, name)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return fetchOne[T](ctx, c, path)
}

// fetchMany GETs path and decodes a list of T. A found result is never a nil slice.
func fetchMany[T any](ctx context.Context, c *Client, path string) ([]T, bool, error) {
	var v []T
	found, err := c.get(ctx, path, &v)
	if err != nil || !found {
		return nil, found, err
	}
	if v == nil {
		v = []T{}
	}
	return v, true, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}
	defer drain(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err := checkStatus(resp); err != nil {
		return false, err
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", resp.Request.URL.Redacted(), err)
	}
	return true, nil
}

func (c *Client) submit(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer drain(resp.Body)

	return checkStatus(resp)
}

func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	return c.baseURL.ResolveReference(ref), nil
}

// do issues one authenticated request. Transport failures are returned as-is
// apart from wrapping.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	u, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("request_id", reqID, "method", method, "url", u.Redacted())
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u.Redacted(), err)
	}

	log.Debug(ctx, "dapnet request", "status", resp.StatusCode, "elapsed", time.Since(start))
	return resp, nil
}

// checkStatus maps any non-2xx response to an *APIError.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.Redacted(),
	}
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
