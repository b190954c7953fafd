package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"frontend-api/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
		wantErr  bool
	}{
		{name: "simple", segments: []string{"workspaces", "ws42"}, want: "/workspaces/ws42"},
		{name: "trace path", segments: []string{"projects", "p1", "traces", "workshop", "v9"}, want: "/projects/p1/traces/workshop/v9"},
		{name: "slash escaped", segments: []string{"workspaces", "a/b"}, want: "/workspaces/a%2Fb"},
		{name: "query chars escaped", segments: []string{"workspaces", "a?b#c"}, want: "/workspaces/a%3Fb%23c"},
		{name: "space escaped", segments: []string{"workspaces", "a b"}, want: "/workspaces/a%20b"},
		{name: "empty segment", segments: []string{"workspaces", ""}, wantErr: true},
		{name: "dot segment", segments: []string{"workspaces", "."}, wantErr: true},
		{name: "dot dot segment", segments: []string{"projects", "..", "admin"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JoinPath(tt.segments...)
			if tt.wantErr {
				require.ErrorIs(t, err, shared.ErrMalformedParameters)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_RejectsBadURLs(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://example.com", "http://", "://bad"} {
		_, err := NewClient(raw)
		assert.Error(t, err, "NewClient(%q)", raw)
	}
}

func TestFetch_ForwardsRequest(t *testing.T) {
	var (
		gotMethod  string
		gotRawPath string
		gotAuth    string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotRawPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short and stout")
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL + "/api/v1/")
	require.NoError(t, err)

	path, err := JoinPath("workspaces", "a/b")
	require.NoError(t, err)
	res, err := c.Fetch(context.Background(), path, http.MethodGet, http.Header{"Authorization": {"Bearer tok"}})
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/api/v1/workspaces/a%2Fb", gotRawPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Equal(t, "yes", res.Header.Get("X-Upstream"))
	assert.Equal(t, "short and stout", string(body))
}

func TestFetch_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	res, err := c.Fetch(context.Background(), "/workspaces/ws42", http.MethodGet, nil)
	assert.Nil(t, res)
	require.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
	assert.Equal(t, http.StatusBadGateway, shared.AsRequestError(err).StatusCode)
}

func TestFetch_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Fetch(ctx, "/workspaces/ws42", http.MethodGet, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, shared.ErrUpstreamUnavailable)
}
