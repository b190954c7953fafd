// Package upstream forwards authenticated calls to the upstream api.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"frontend-api/internal/metrics"
	"frontend-api/internal/shared"
)

// ErrInvalidSegment is returned by JoinPath for an empty or dot segment.
var ErrInvalidSegment = fmt.Errorf("%w: invalid path segment", shared.ErrMalformedParameters)

// Response is the upstream's reply. Callers own Body and must close it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Fetcher performs a call against the upstream api.
type Fetcher interface {
	Fetch(ctx context.Context, path string, method string, header http.Header) (*Response, error)
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient returns a Client rooted at baseURL. baseURL may carry a path
// prefix, which is kept in front of every fetched path.
func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("upstream url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("upstream url %q: missing host", baseURL)
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: shared.DefaultDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout: shared.DefaultDialTimeout,
		DisableKeepAlives:   false,
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Transport: tr, Timeout: shared.DefaultHTTPTimeout},
	}, nil
}

// Fetch issues method against path on the upstream. path must already be
// escaped, see JoinPath. A non-2xx status is not an error.
func (c *Client) Fetch(ctx context.Context, path string, method string, header http.Header) (*Response, error) {
	target := c.resolve(path)

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(routeLabel(ctx), "error").Observe(time.Since(start).Seconds())
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("upstream %s %s: %w", method, path, err)
		}
		return nil, fmt.Errorf("upstream %s %s: %w: %w", method, path, shared.ErrUpstreamUnavailable, err)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(routeLabel(ctx), strconv.Itoa(res.StatusCode)).Observe(time.Since(start).Seconds())

	return &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       res.Body,
	}, nil
}

func (c *Client) resolve(path string) string {
	u := *c.baseURL
	prefix := strings.TrimSuffix(u.EscapedPath(), "/")
	joined := prefix + "/" + strings.TrimPrefix(path, "/")
	u.RawPath = joined
	if unescaped, err := url.PathUnescape(joined); err == nil {
		u.Path = unescaped
	} else {
		u.Path = joined
	}
	return u.String()
}

// JoinPath joins segments into an absolute path, escaping each one so
// reserved characters in identifiers cannot change the path's shape.
func JoinPath(segments ...string) (string, error) {
	var b strings.Builder
	for _, s := range segments {
		if s == "" || s == "." || s == ".." {
			return "", ErrInvalidSegment
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String(), nil
}

type routeKey struct{}

// WithRoute labels outbound metrics for calls made with the returned context.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

func routeLabel(ctx context.Context) string {
	if route, ok := ctx.Value(routeKey{}).(string); ok {
		return route
	}
	return "unknown"
}
