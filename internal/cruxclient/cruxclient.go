// Package cruxclient provides the CrUX metrics sources: the public API reached with
// an API key, and a proxy endpoint that forwards the same records.
package cruxclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
)

// DefaultBaseURL is the CrUX API host.
const DefaultBaseURL = "https://chromeuxreport.googleapis.com"

// Record endpoints of the CrUX API.
const (
	snapshotPath = "/v1/records:queryRecord"
	historyPath  = "/v1/records:queryHistoryRecord"
)

// ErrEmptyCredential is returned by Resolve when no key or proxy URL is given.
var ErrEmptyCredential = errors.New("empty credential")

// StatusError is a non-2xx response from the metrics source.
type StatusError struct {
	Code int
	API  *schema.APIError // may be nil
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.API != nil {
		return fmt.Sprintf("status %d: %s", e.Code, e.API.Message)
	}
	return fmt.Sprintf("status %d", e.Code)
}

// Unwrap exposes the application-level error, if any.
func (e *StatusError) Unwrap() error {
	if e.API == nil {
		return nil
	}
	return e.API
}

type options struct {
	httpClient   *http.Client
	baseURL      string
	retryBackoff time.Duration
}

// Option configures a transport.
type Option func(*options)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.httpClient = &http.Client{Timeout: d} }
}

// WithBaseURL overrides the CrUX API host. Ignored by the proxy transport.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithRetryBackoff sets the wait before the single retry of a network failure.
func WithRetryBackoff(d time.Duration) Option {
	return func(o *options) { o.retryBackoff = d }
}

// IsProxyURL reports whether credential is a proxy URL rather than an API key.
func IsProxyURL(credential string) bool {
	c := strings.ToLower(strings.TrimSpace(credential))
	return strings.HasPrefix(c, "http://") || strings.HasPrefix(c, "https://")
}

// Resolve picks the transport for credential once: a string starting with an
// http(s) scheme selects the proxy, anything else is used as an API key.
func Resolve(credential string, opts ...Option) (contract.MetricsSource, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrEmptyCredential
	}

	o := options{
		httpClient:   &http.Client{Timeout: contract.DefaultHTTPTimeout},
		baseURL:      DefaultBaseURL,
		retryBackoff: contract.DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(&o)
	}
	r := requester{client: o.httpClient, retryBackoff: o.retryBackoff}

	if IsProxyURL(credential) {
		u, err := url.Parse(credential)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy URL %q", credential)
		}
		return &ProxyTransport{proxy: u, req: r}, nil
	}
	return &APIKeyTransport{key: credential, baseURL: o.baseURL, req: r}, nil
}

// requester performs one JSON exchange with the single network retry.
type requester struct {
	client       *http.Client
	retryBackoff time.Duration
}

// do sends the request built by newReq and decodes a 2xx body into out. Only
// transport failures are retried; status and decode errors are final.
func (r requester) do(ctx context.Context, newReq func() (*http.Request, error), out any) error {
	var body []byte
	op := func() error {
		req, err := newReq()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		resp, err := r.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(newStatusError(resp.StatusCode, data))
		}
		body = data
		return nil
	}
	if err := contract.Retry(ctx, r.retryBackoff, op); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// newStatusError extracts the API error object from a failed response, if present.
func newStatusError(code int, body []byte) *StatusError {
	var envelope struct {
		Error *schema.APIError `json:"error"`
	}
	_ = json.Unmarshal(body, &envelope)
	return &StatusError{Code: code, API: envelope.Error}
}

// snapshotFromResponse validates a decoded snapshot envelope.
func snapshotFromResponse(resp *schema.SnapshotResponse) (*schema.RawDeviceSnapshot, error) {
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Record == nil {
		return nil, errors.New("response has no record")
	}
	return resp.Record, nil
}

// historyFromResponse validates a decoded history envelope.
func historyFromResponse(resp *schema.HistoryResponse) (*schema.RawDeviceHistory, error) {
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Record == nil || resp.Record.Metrics == nil {
		return nil, errors.New("history response has no record.metrics")
	}
	return resp.Record, nil
}

// trackedMetricNames lists the metrics requested from the API.
func trackedMetricNames() []string {
	names := make([]string, len(schema.AllMetrics))
	for i, m := range schema.AllMetrics {
		names[i] = string(m)
	}
	return names
}

// APIKeyTransport queries the CrUX API directly.
type APIKeyTransport struct {
	key     string
	baseURL string
	req     requester
}

var _ contract.MetricsSource = &APIKeyTransport{} // Compile-time check

// String names the transport without revealing the key.
func (t *APIKeyTransport) String() string {
	return "CrUX API (" + t.baseURL + ")"
}

// GetSnapshot implements the MetricsSource interface.
func (t *APIKeyTransport) GetSnapshot(ctx context.Context, origin string, ff schema.FormFactor) (*schema.RawDeviceSnapshot, error) {
	var resp schema.SnapshotResponse
	body := schema.QueryRequest{Origin: origin, FormFactor: ff.APIName(), Metrics: trackedMetricNames()}
	if err := t.post(ctx, snapshotPath, body, &resp); err != nil {
		return nil, err
	}
	return snapshotFromResponse(&resp)
}

// GetHistory implements the MetricsSource interface.
func (t *APIKeyTransport) GetHistory(ctx context.Context, origin string, ff schema.FormFactor) (*schema.RawDeviceHistory, error) {
	var resp schema.HistoryResponse
	body := schema.QueryRequest{
		Origin:                origin,
		FormFactor:            ff.APIName(),
		Metrics:               trackedMetricNames(),
		CollectionPeriodCount: schema.HistoryWindows,
	}
	if err := t.post(ctx, historyPath, body, &resp); err != nil {
		return nil, err
	}
	return historyFromResponse(&resp)
}

func (t *APIKeyTransport) post(ctx context.Context, path string, body schema.QueryRequest, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	endpoint := t.baseURL + path + "?key=" + url.QueryEscape(t.key)
	return t.req.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, out)
}

// Proxy endpoint values.
const (
	proxyFetch   = "fetch"
	proxyHistory = "history"
)

// ProxyTransport reaches the CrUX records through an intermediary that takes
// origin, formFactor and endpoint as query parameters.
type ProxyTransport struct {
	proxy *url.URL
	req   requester
}

var _ contract.MetricsSource = &ProxyTransport{} // Compile-time check

// String names the transport.
func (t *ProxyTransport) String() string {
	return "proxy " + t.proxy.Scheme + "://" + t.proxy.Host
}

// GetSnapshot implements the MetricsSource interface.
func (t *ProxyTransport) GetSnapshot(ctx context.Context, origin string, ff schema.FormFactor) (*schema.RawDeviceSnapshot, error) {
	var resp schema.SnapshotResponse
	if err := t.get(ctx, origin, ff, proxyFetch, &resp); err != nil {
		return nil, err
	}
	return snapshotFromResponse(&resp)
}

// GetHistory implements the MetricsSource interface.
func (t *ProxyTransport) GetHistory(ctx context.Context, origin string, ff schema.FormFactor) (*schema.RawDeviceHistory, error) {
	var resp schema.HistoryResponse
	if err := t.get(ctx, origin, ff, proxyHistory, &resp); err != nil {
		return nil, err
	}
	return historyFromResponse(&resp)
}

func (t *ProxyTransport) get(ctx context.Context, origin string, ff schema.FormFactor, endpoint string, out any) error {
	u := *t.proxy
	q := u.Query()
	q.Set("origin", origin)
	q.Set("formFactor", ff.APIName())
	q.Set("endpoint", endpoint)
	u.RawQuery = q.Encode()
	target := u.String()

	return t.req.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}, out)
}
