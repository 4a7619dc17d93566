// Package client talks to the portfolio backend. Every credentialed call
// goes through the session gateway in this file.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tunjipaul/folio/pkg/session"
)

// maxErrorBody caps how much of a failed response is read for its detail.
const maxErrorBody = 1 << 20

// Client is the portfolio API client. Every credentialed call goes through
// Request, Upload or Download, which enforce session expiry, attach the
// bearer token and normalize failures.
type Client struct {
	baseURL    string
	store      *session.Store
	httpClient *http.Client
	logger     zerolog.Logger
	onLogout   atomic.Pointer[func()]
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithLogoutHook sets the function called after the session is cleared by
// Logout, an expired session, or a 401. It sends the user back to login.
func WithLogoutHook(fn func()) Option {
	return func(c *Client) { c.SetLogoutHook(fn) }
}

// New creates a new API client over the given session store.
func New(baseURL string, store *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zerolog.Nop(),
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the store the client reads credentials from.
func (c *Client) Session() *session.Store {
	return c.store
}

// SetLogoutHook replaces the logout hook. Used when the hook target is
// created after the client. Safe to call while requests are in flight.
func (c *Client) SetLogoutHook(fn func()) {
	if fn == nil {
		c.onLogout.Store(nil)
		return
	}
	c.onLogout.Store(&fn)
}

// Logout clears the session and sends the user back to login.
func (c *Client) Logout() {
	if err := c.store.Clear(); err != nil {
		c.logger.Error().Err(err).Msg("clear session")
	}
	if fn := c.onLogout.Load(); fn != nil {
		(*fn)()
	}
}

// RequestOptions describes one call. A nil Body sends no body; []byte and
// json.RawMessage are sent as is; anything else is JSON-encoded.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   any
}

// Result is a successful response. Body is nil for 204 No Content.
type Result struct {
	StatusCode int
	Body       json.RawMessage
}

// Empty returns true if the response carried no content.
func (r *Result) Empty() bool {
	return r == nil || r.Body == nil
}

// Decode unmarshals the body into out. An empty result leaves out untouched.
func (r *Result) Decode(out any) error {
	if r.Empty() || out == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Request performs an authenticated JSON call to endpoint.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (*Result, error) {
	rec, err := c.gate(endpoint)
	if err != nil {
		return nil, err
	}
	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	for k, vs := range opts.Header {
		header[http.CanonicalHeaderKey(k)] = vs
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := c.send(ctx, rec, method, endpoint, header, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if err := c.checkStatus(resp, "Request"); err != nil {
		return nil, err
	}
	return readJSON(resp)
}

// Upload posts a multipart form to endpoint. The Content-Type, including
// its boundary, comes from the form.
func (c *Client) Upload(ctx context.Context, endpoint string, form *Form) (*Result, error) {
	rec, err := c.gate(endpoint)
	if err != nil {
		return nil, err
	}
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Content-Type", contentType)

	resp, err := c.send(ctx, rec, http.MethodPost, endpoint, header, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if err := c.checkStatus(resp, "Upload"); err != nil {
		return nil, err
	}
	return readJSON(resp)
}

// File is a downloaded binary document.
type File struct {
	ContentType string
	Filename    string
	Data        []byte
}

// Download fetches endpoint as raw bytes under the same session rules as
// Request.
func (c *Client) Download(ctx context.Context, endpoint string) (*File, error) {
	rec, err := c.gate(endpoint)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, rec, http.MethodGet, endpoint, http.Header{}, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if err := c.checkStatus(resp, "Download"); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &File{
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    attachmentName(resp.Header.Get("Content-Disposition")),
		Data:        data,
	}, nil
}

// gate reads the session once and logs out when it has expired. It runs
// before any local work on the request body.
func (c *Client) gate(endpoint string) (session.Record, error) {
	rec, err := c.store.Load()
	if err != nil || rec.ExpiredAt(c.store.Now()) {
		c.logger.Warn().Str("endpoint", endpoint).Msg("token expired, logging out")
		c.Logout()
		return session.Record{}, ErrSessionExpired
	}
	return rec, nil
}

// send attaches the credentials in rec and performs the call. A concurrent
// clear after gate does not affect the in-flight request.
func (c *Client) send(ctx context.Context, rec session.Record, method, endpoint string, header http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	if rec.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+rec.AccessToken)
	}
	id := c.newID()
	req.Header.Set("X-Request-ID", id)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("request_id", id).Str("method", method).Str("endpoint", endpoint).Msg("request failed")
		return nil, fmt.Errorf("do request: %w", err)
	}
	c.logger.Debug().
		Str("request_id", id).
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request")
	return resp, nil
}

// checkStatus maps 401 to a forced logout and other failures to RequestError.
func (c *Client) checkStatus(resp *http.Response, verb string) error {
	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn().Str("endpoint", resp.Request.URL.Path).Msg("unauthorized request, logging out")
		c.Logout()
		return ErrAuthenticationFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp, verb)
	}
	return nil
}

// errorFromResponse extracts {"detail": "..."} or falls back to a generic
// status-coded message.
func errorFromResponse(resp *http.Response, verb string) error {
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var apiErr struct {
			Detail any `json:"detail"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if detail, ok := apiErr.Detail.(string); ok && detail != "" {
				return &RequestError{StatusCode: resp.StatusCode, Message: detail}
			}
		}
	}
	return &RequestError{StatusCode: resp.StatusCode, Message: genericFailure(verb, resp.StatusCode)}
}

func readJSON(resp *http.Response) (*Result, error) {
	if resp.StatusCode == http.StatusNoContent {
		return &Result{StatusCode: resp.StatusCode}, nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("decode response: invalid JSON body (%d bytes)", len(data))
	}
	return &Result{StatusCode: resp.StatusCode, Body: json.RawMessage(data)}, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	res, err := c.Request(ctx, path, RequestOptions{Method: method, Body: body})
	if err != nil {
		return err
	}
	return res.Decode(out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
