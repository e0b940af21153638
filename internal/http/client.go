// Package http implements the transport underneath the resource clients: URL
// composition over a relative path cursor, bearer authentication, dry-run
// suppression of mutating calls, retry on transient failure, and translation
// of API error bodies into grist.APIError.
package http

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

	"github.com/hashicorp/go-retryablehttp"

	"github.com/gristlabs/grist-go/internal/constants"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// contentionMarker flags a retryable write conflict in the backend, reported
// inside an otherwise well-formed error body.
const contentionMarker = "SQLITE_BUSY"

// Client performs authenticated HTTP calls against one base URL, scoped to a
// relative path cursor. Child, Parent, and At derive new handles sharing the
// same underlying session; the cursor itself is immutable per handle.
type Client struct {
	baseURL   string
	basePath  string
	apiKey    string
	userAgent string
	dryRun    bool
	debug     bool
	logger    grist.Logger
	retry     *retryablehttp.Client
}

// Request represents one HTTP request to the API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// Raw skips the JSON decode and error-field translation, for download
	// endpoints returning CSV/XLSX/SQLite bodies.
	Raw bool
}

// Response represents the response of one API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte

	// JSON is the decoded body; nil for Raw requests.
	JSON interface{}
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient installs a pre-built session instead of the default one.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.retry.HTTPClient = httpClient
	}
}

// WithDryRun suppresses mutating calls; reads still execute.
func WithDryRun(dryRun bool) Option {
	return func(c *Client) {
		c.dryRun = dryRun
	}
}

// WithLogger sets the logger.
func WithLogger(logger grist.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPTimeout sets the per-request timeout of the session.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retry.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig tunes the retry policy. retryMax counts retries after the
// first attempt; waitMin and waitMax bound the pause between attempts.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryMax = retryMax
		c.retry.RetryWaitMin = waitMin
		c.retry.RetryWaitMax = waitMax
	}
}

// NewClient creates a transport rooted at baseURL. An empty apiKey sends no
// Authorization header, for sessions that carry their own.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWait
	retryClient.RetryWaitMax = constants.DefaultRetryWait
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		logger:  &noopLogger{},
		retry:   retryClient,
	}

	retryClient.CheckRetry = client.checkRetry
	retryClient.Backoff = fixedBackoff

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// JoinURL joins the given parts, inserting single slashes where necessary and
// dropping any trailing slash.
func JoinURL(parts ...string) string {
	joined := ""
	for _, part := range parts {
		part = strings.TrimLeft(part, "/")
		if part == "" {
			continue
		}

		if joined == "" {
			joined = strings.TrimRight(part, "/")

			continue
		}

		joined = strings.TrimRight(joined, "/") + "/" + part
	}

	return strings.TrimRight(joined, "/")
}

// At returns a handle scoped to the given path, sharing this session.
func (c *Client) At(path string) *Client {
	clone := *c
	clone.basePath = strings.TrimSuffix(path, "/")

	return &clone
}

// Child returns a handle with the given segments appended to the cursor.
func (c *Client) Child(segments ...string) *Client {
	parts := append([]string{c.basePath}, segments...)

	return c.At("/" + JoinURL(parts...))
}

// Parent returns a handle with the last cursor segment removed. At the root
// it is a no-op.
func (c *Client) Parent() *Client {
	path := strings.Trim(c.basePath, "/")
	if path == "" {
		return c.At("")
	}

	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return c.At("")
	}

	return c.At("/" + path[:idx])
}

// BasePath returns the current path cursor.
func (c *Client) BasePath() string {
	return c.basePath
}

// FullURL resolves the absolute URL for a path relative to the cursor.
func (c *Client) FullURL(path string) string {
	return JoinURL(c.baseURL, c.basePath, path)
}

// Do executes the request, applying dry-run, retry, and error-normalization
// policy. For a suppressed dry-run call both the response and the error are
// nil. On a hard API failure the response is returned alongside the error so
// callers can inspect the status and raw body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.FullURL(req.Path)
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	if c.dryRun && isMutating(req.Method) {
		c.logger.Info("dry-run: not sending request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})

		return nil, nil
	}

	httpReq, err := c.newRequest(ctx, req, fullURL)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	resp, err := c.retry.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, fmt.Errorf("request to %s failed: %w", fullURL, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", fullURL, err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    fullURL,
		})
	}

	if req.Raw {
		if !isSuccess(resp.StatusCode) {
			return response, &grist.APIError{
				URL:        fullURL,
				StatusCode: resp.StatusCode,
				Body:       data,
			}
		}

		return response, nil
	}

	return c.translate(fullURL, response)
}

// translate applies the JSON error classification of the API: an unparseable
// body is a hard error, as is a populated error field or a non-2xx status.
func (c *Client) translate(fullURL string, response *Response) (*Response, error) {
	var parsed interface{}

	err := json.Unmarshal(response.Body, &parsed)
	if err != nil {
		return response, &grist.APIError{
			URL:        fullURL,
			StatusCode: response.StatusCode,
			Body:       response.Body,
			Message:    "failed to parse JSON",
		}
	}

	response.JSON = parsed

	var errField interface{}
	if body, ok := parsed.(map[string]interface{}); ok {
		errField = body["error"]
	}

	if errField != nil || !isSuccess(response.StatusCode) {
		return response, &grist.APIError{
			URL:          fullURL,
			StatusCode:   response.StatusCode,
			Body:         response.Body,
			ResponseJSON: parsed,
		}
	}

	return response, nil
}

func (c *Client) newRequest(ctx context.Context, req *Request, fullURL string) (*retryablehttp.Request, error) {
	var body interface{}

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("serializing request body: %w", err)
		}

		body = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// checkRetry classifies failures as transient or hard: connection-level
// errors, the 502/503/504 gateway statuses, and an error body carrying the
// contention marker are retryable; everything else surfaces immediately. The
// body is sniffed whatever Content-Type the server declared, since contention
// errors are not always served as application/json.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		retryable, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		if retryable {
			c.logger.Warn("request failed, trying again", map[string]interface{}{
				"error": err.Error(),
			})
		}

		return retryable, nil
	}

	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		c.logger.Warn("server returned transient status, trying again", map[string]interface{}{
			"status": resp.StatusCode,
		})

		return true, nil
	}

	data, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if readErr != nil {
		return false, nil
	}

	var parsed map[string]interface{}

	if json.Unmarshal(data, &parsed) != nil {
		return false, nil
	}

	errField, ok := parsed["error"]
	if !ok || errField == nil {
		return false, nil
	}

	if strings.Contains(fmt.Sprintf("%v", errField), contentionMarker) {
		c.logger.Warn("server reported contention, trying again", map[string]interface{}{
			"error": errField,
		})

		return true, nil
	}

	return false, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// GetRaw performs a GET request returning the body verbatim, without JSON
// error translation.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query, Raw: true})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Close releases idle connections of the shared session. Safe to call from
// any handle derived from the same root client.
func (c *Client) Close() {
	c.retry.HTTPClient.CloseIdleConnections()
}

// fixedBackoff pauses a constant waitMin between attempts.
func fixedBackoff(waitMin, waitMax time.Duration, attemptNum int, resp *http.Response) time.Duration {
	return waitMin
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
