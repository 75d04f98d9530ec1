package designinsight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/Bahjat/design-playbook/internal/platform/errs"
)

// Fetcher retrieves a page and returns its parsed document tree.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// HTTPClient implements Fetcher with a single GET per call and no retries.
type HTTPClient struct {
	client *http.Client
}

const (
	// UserAgent is sent with every page request.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultFetchTimeout bounds the whole request, body included.
	DefaultFetchTimeout = 10 * time.Second

	maxRedirects    = 10
	maxResponseBody = 10 << 20 // 10 MB
)

var errTooManyRedirects = errors.New("too many redirects")

// ClientOption customizes an HTTPClient.
type ClientOption func(*clientOptions)

type clientOptions struct {
	timeout time.Duration
	control dialControl
}

// WithTimeout overrides DefaultFetchTimeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithPrivateNetworkGuard makes the client refuse to connect to loopback,
// private and other reserved addresses.
func WithPrivateNetworkGuard(enabled bool) ClientOption {
	return func(o *clientOptions) {
		o.control = nil
		if enabled {
			o.control = publicOnly
		}
	}
}

// NewHTTPClient returns a Fetcher backed by an http.Client with a 10s timeout
// unless overridden.
func NewHTTPClient(opts ...ClientOption) *HTTPClient {
	o := clientOptions{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	dialer := &net.Dialer{
		Timeout:   o.timeout,
		KeepAlive: 30 * time.Second,
		Control:   o.control,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext

	return &HTTPClient{
		client: &http.Client{
			Timeout:       o.timeout,
			Transport:     transport,
			CheckRedirect: redirectPolicy,
		},
	}
}

// redirectPolicy matches net/http's default hop limit.
func redirectPolicy(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	return nil
}

// Fetch issues one GET for targetURL and parses the body. Any failure,
// including a non-2xx status, is returned as an *errs.AppError.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Error fetching website",
			Cause:   err,
		}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: resp.StatusCode,
			Message:        "Error fetching website",
			Cause:          fmt.Errorf("%s for url: %s", resp.Status, targetURL),
		}
	}

	// Pages declaring a legacy encoding are transcoded to UTF-8 before parsing.
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxResponseBody), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, parseError(ctx, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, parseError(ctx, err)
	}
	return doc, nil
}

// parseError reports a body read that died mid-stream as a transport
// failure and anything else as unparseable content.
func parseError(ctx context.Context, err error) *errs.AppError {
	if ctx.Err() != nil || isTimeout(err) {
		return classifyTransportError(err)
	}
	return &errs.AppError{
		Kind:    errs.ParsingFailed,
		Message: "Error fetching website",
		Cause:   err,
	}
}

func classifyTransportError(err error) *errs.AppError {
	kind := errs.Unreachable
	if isTimeout(err) {
		kind = errs.Timeout
	}
	return &errs.AppError{
		Kind:    kind,
		Message: "Error fetching website",
		Cause:   err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
