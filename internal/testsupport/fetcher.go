// Package testsupport holds fakes shared by package tests.
package testsupport

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"frontend-api/internal/shared"
	"frontend-api/internal/upstream"
)

// Call is one outbound request seen by a RecordingFetcher.
type Call struct {
	Path   string
	Method string
	Header http.Header
}

// RecordingFetcher records every Fetch and answers with a canned response.
type RecordingFetcher struct {
	mu     sync.Mutex
	calls  []Call
	Status int
	Header http.Header
	Body   string
	Err    error
}

func (f *RecordingFetcher) Fetch(_ context.Context, path string, method string, header http.Header) (*upstream.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Path: path, Method: method, Header: header.Clone()})
	if f.Err != nil {
		return nil, f.Err
	}
	status := f.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := f.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	return &upstream.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(f.Body)),
	}, nil
}

func (f *RecordingFetcher) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// StaticResolver resolves exactly one token to a session.
type StaticResolver struct {
	Token   string
	Session *shared.Session
}

func (r *StaticResolver) Resolve(_ context.Context, token string) (*shared.Session, error) {
	if token == "" {
		return nil, shared.ErrMissingAuth
	}
	if token != r.Token || r.Session == nil {
		return nil, shared.ErrUnauthorized
	}
	return r.Session, nil
}

// SessionFor returns a session for apiKey expiring an hour from now.
func SessionFor(apiKey string) *shared.Session {
	return &shared.Session{
		User:    &shared.User{ID: 42, Email: "user@example.com", APIKey: apiKey},
		Expires: time.Now().Add(time.Hour),
	}
}
