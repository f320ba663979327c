package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// Client issues authenticated JSON requests to the promptbox REST backend.
// Authentication is a session cookie held in the client's cookie jar; no
// bearer token is sent. A Client is safe for use from a single command's
// event loop; it performs no retries, queuing, or de-duplication.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a client rooted at baseURL (scheme://host, without /api).
// A zero timeout means the underlying client's default (none).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// SetHTTPClient replaces the underlying HTTP client (useful for testing).
// The cookie jar is carried over if the replacement has none.
func (c *Client) SetHTTPClient(client *http.Client) {
	if client.Jar == nil {
		client.Jar = c.httpClient.Jar
	}
	c.httpClient = client
}

// Cookies returns the session cookies currently held for the backend.
func (c *Client) Cookies() []*http.Cookie {
	return c.httpClient.Jar.Cookies(c.baseURL)
}

// RestoreCookies seeds the jar with previously persisted session cookies.
func (c *Client) RestoreCookies(cookies []*http.Cookie) {
	c.httpClient.Jar.SetCookies(c.baseURL, cookies)
}

// get issues a GET to path with the given query and decodes into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST with a JSON body and decodes into out (out may be nil).
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// patch issues a PATCH with a JSON body and decodes into out (out may be nil).
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// delete issues a DELETE to path with the given query.
func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

// do builds, sends, and decodes one request. Non-2xx responses become
// *errors.APIError; transport failures wrap ErrUnreachable. The raw response
// body is never retained beyond decoding.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("%s %s: %w: %v", method, path, apperrors.ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(method, path, resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError turns a structured error body into an *errors.APIError.
// Bodies carry either {"detail": "..."}, {"error": "..."}, or a per-field
// map of messages; anything else is kept as an empty-detail error.
func decodeAPIError(method, path string, status int, data []byte) error {
	apiErr := &apperrors.APIError{Method: method, Path: path, Status: status}

	var structured map[string]json.RawMessage
	if err := json.Unmarshal(data, &structured); err != nil {
		return apiErr
	}

	if raw, ok := structured["detail"]; ok {
		_ = json.Unmarshal(raw, &apiErr.Detail)
	}
	if apiErr.Detail == "" {
		if raw, ok := structured["error"]; ok {
			_ = json.Unmarshal(raw, &apiErr.Detail)
		}
	}

	if apiErr.Detail == "" {
		// Field-error object: every value is a string or list of strings.
		fields := make(map[string][]string)
		for field, raw := range structured {
			var list []string
			if err := json.Unmarshal(raw, &list); err == nil {
				fields[field] = list
				continue
			}
			var single string
			if err := json.Unmarshal(raw, &single); err == nil {
				fields[field] = []string{single}
			}
		}
		if len(fields) > 0 {
			apiErr.Fields = fields
		}
	}

	return apiErr
}
