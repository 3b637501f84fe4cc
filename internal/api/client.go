// Package api wraps all outbound calls to the library REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client calls the library backend over HTTP. The credential is read
// through a token source on every request so the client never owns
// session state; an expired session is reported through a hook instead
// of being handled in place.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokenSource      func() string
	onSessionExpired func()
}

// Error represents a non-success backend response.
type Error struct {
	Status     int
	StatusText string
	Details    string
}

func (e *Error) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%d %s", e.Status, e.StatusText)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.StatusText, e.Details)
}

// ErrSessionExpired is returned for a 401 on an authenticated call, after
// the session-expired hook has fired. The response body is not usable.
var ErrSessionExpired = errors.New("session expired")

// Options controls a single request.
type Options struct {
	Method       string
	Body         any
	RequiresAuth bool
}

// Response is a decoded success response: JSON holds the raw payload when
// the content type indicated JSON and it parsed, Text holds the body
// otherwise.
type Response struct {
	JSON json.RawMessage
	Text string
}

// Pretty renders the response for the diagnostic output pane.
func (r Response) Pretty() string {
	if len(r.JSON) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, r.JSON, "", "  "); err == nil {
			return buf.String()
		}
	}
	return r.Text
}

// Decode unmarshals the JSON payload into out. A non-JSON or empty
// response leaves out untouched.
func (r Response) Decode(out any) error {
	if len(r.JSON) == 0 {
		return nil
	}
	return json.Unmarshal(r.JSON, out)
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetTokenSource installs the credential reader used for authenticated
// requests.
func (c *Client) SetTokenSource(fn func() string) {
	c.tokenSource = fn
}

// SetSessionExpiredHook installs the callback fired when an authenticated
// call receives a 401.
func (c *Client) SetSessionExpiredHook(fn func()) {
	c.onSessionExpired = fn
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request performs one call against the backend. Side effects are
// confined to network I/O and the session-expired hook.
func (c *Client) Request(ctx context.Context, path string, opts Options) (Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return Response{}, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return Response{}, err
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.RequiresAuth && c.tokenSource != nil {
		// No credential means the call proceeds unauthenticated and the
		// backend rejects it.
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode == http.StatusUnauthorized && opts.RequiresAuth {
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return Response{}, ErrSessionExpired
	}

	payload, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		payload = nil
	}
	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &Error{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Details:    strings.TrimSpace(string(payload)),
		}
	}

	if isJSON {
		if !json.Valid(payload) {
			return Response{}, nil
		}
		return Response{JSON: payload}, nil
	}
	return Response{Text: string(payload)}, nil
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
}
