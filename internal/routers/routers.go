// Package routers binds handlers to echo routes and writes their responses.
package routers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"frontend-api/internal/ctx"
	"frontend-api/internal/shared"
	"frontend-api/internal/upstream"
)

// ResponsePolicy decides how much of an upstream response reaches the caller.
type ResponsePolicy string

const (
	// PolicyPassthrough forwards upstream status, end-to-end headers and body.
	PolicyPassthrough ResponsePolicy = "passthrough"
	// PolicyBodyOnly answers 200 with default headers and the upstream body,
	// whatever the upstream status was.
	PolicyBodyOnly ResponsePolicy = "body-only"
)

func ParseResponsePolicy(s string) (ResponsePolicy, error) {
	switch p := ResponsePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyPassthrough, PolicyBodyOnly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown response policy %q (want %q or %q)", s, PolicyPassthrough, PolicyBodyOnly)
	}
}

// statusClientClosedRequest is logged when the caller goes away mid request.
const statusClientClosedRequest = 499

var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// writeUpstream streams res to the caller under policy and closes its body.
func writeUpstream(c *ctx.Context, res *upstream.Response, policy ResponsePolicy) error {
	defer res.Body.Close()

	w := c.Response()
	switch policy {
	case PolicyPassthrough:
		header := res.Header.Clone()
		removeHopByHop(header)
		for k, vs := range header {
			w.Header()[k] = vs
		}
		w.WriteHeader(res.StatusCode)
	default:
		w.WriteHeader(http.StatusOK)
	}

	if _, err := io.Copy(w, res.Body); err != nil {
		// Headers are gone already, all we can do is record it.
		c.LogValues.AddError(fmt.Errorf("stream upstream body: %w", err))
	}
	return nil
}

func removeHopByHop(h http.Header) {
	for _, v := range h.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopByHopHeaders {
		h.Del(name)
	}
}

// writeError renders err as a JSON error body using the status of the first
// shared.RequestError in its chain.
func writeError(c *ctx.Context, err error) error {
	c.LogValues.AddError(err)
	if errors.Is(err, context.Canceled) {
		return c.NoContent(statusClientClosedRequest)
	}
	reqErr := shared.AsRequestError(err)
	return c.JSON(reqErr.StatusCode, map[string]string{"error": reqErr.Err.Error()})
}

// pathParam returns the unescaped value of a route parameter. echo matches
// against the raw path when one exists, leaving parameters escaped.
func pathParam(c *ctx.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath != "" {
		unescaped, err := url.PathUnescape(v)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", shared.ErrMalformedParameters, name, err)
		}
		v = unescaped
	}
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", shared.ErrMalformedParameters, name)
	}
	return v, nil
}
