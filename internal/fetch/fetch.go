// Package fetch provides HTTP retrieval of storefront pages as parsed
// documents, plus a cheap reachability probe. A fetch is a single
// attempt by default; callers that want transient failures (rate
// limits, 5xx, network resets) retried with backoff opt in through
// Options.MaxAttempts. Hard failures like 404 always surface
// immediately so callers can treat them as absence.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

const maxBodyBytes = 2 * 1024 * 1024

// Options configures a Client.
type Options struct {
	Timeout      time.Duration // content pages and the catalog endpoint
	ProbeTimeout time.Duration // existence checks
	UserAgent    string
	MaxAttempts  int // total tries per page fetch, 0 or 1 means a single attempt
}

// Client fetches pages with a browser-like identity header.
type Client struct {
	http      *http.Client
	probe     *http.Client
	userAgent string
	retry     retryPolicy
}

// New creates a Client. Zero option fields get defaults (30s content
// timeout, 8s probe timeout, Chrome-style user agent).
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.ProbeTimeout == 0 {
		opts.ProbeTimeout = 8 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConnsPerHost: 4,
	}

	retry := defaultRetryPolicy()
	if opts.MaxAttempts > 1 {
		retry.maxAttempts = opts.MaxAttempts
	}

	return &Client{
		http:      &http.Client{Timeout: opts.Timeout, Transport: transport},
		probe:     &http.Client{Timeout: opts.ProbeTimeout, Transport: transport},
		userAgent: opts.UserAgent,
		retry:     retry,
	}
}

// Document fetches a URL and parses the body as HTML.
// Any non-2xx status or transport error is returned as an error.
func (c *Client) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := c.get(ctx, rawURL, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: parse html %s", rawURL)
	}
	return doc, nil
}

// JSON fetches a URL and decodes the body into v.
func (c *Client) JSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.get(ctx, rawURL, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return eris.Wrapf(err, "fetch: decode json %s", rawURL)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	var body []byte
	err := c.retry.do(ctx, func(ctx context.Context) error {
		var err error
		body, err = c.getOnce(ctx, rawURL, accept)
		return err
	})
	return body, err
}

func (c *Client) getOnce(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: create request %s", rawURL)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: get %s", rawURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{url: rawURL, code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: read body %s", rawURL)
	}
	return body, nil
}

// Reachability is the typed outcome of an existence check.
type Reachability string

const (
	Reachable   Reachability = "reachable"
	Unreachable Reachability = "unreachable"
	Unknown     Reachability = "unknown"
)

// Probe checks whether a URL exists using HEAD, falling back to a short
// streaming GET when HEAD is rejected or unsupported. The GET reads no
// body; only the status line matters.
func (c *Client) Probe(ctx context.Context, rawURL string) Reachability {
	status, err := c.probeOnce(ctx, http.MethodHead, rawURL)
	if err == nil && status != http.StatusMethodNotAllowed && status != http.StatusNotImplemented {
		if status < 400 {
			return Reachable
		}
		return Unreachable
	}

	status, err = c.probeOnce(ctx, http.MethodGet, rawURL)
	if err != nil {
		return Unknown
	}
	if status < 400 {
		return Reachable
	}
	return Unreachable
}

func (c *Client) probeOnce(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.probe.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

// NormalizeURL prefixes protocol-less URLs with https and validates that
// the result parses with a host. Trailing slashes are stripped so the
// value can serve as a base for path joins.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", eris.New("fetch: empty url")
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	} else if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", eris.Wrapf(err, "fetch: parse url %s", raw)
	}
	if u.Host == "" {
		return "", eris.Errorf("fetch: url has no host: %s", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
