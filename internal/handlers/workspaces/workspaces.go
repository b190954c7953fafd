// Package workspaces proxies workspace lookups to the upstream api.
package workspaces

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"frontend-api/internal/shared"
	"frontend-api/internal/upstream"

	"go.uber.org/zap"
)

const workspaceRoute = "workspace"

type WorkspaceHandler struct {
	Log      *zap.SugaredLogger
	Upstream upstream.Fetcher
	now      func() time.Time
}

func NewWorkspaceHandler(fetcher upstream.Fetcher, log *zap.SugaredLogger) *WorkspaceHandler {
	return &WorkspaceHandler{Log: log, Upstream: fetcher, now: time.Now}
}

type GetWorkspaceInput struct {
	Ctx         context.Context
	Session     *shared.Session
	WorkspaceID string
}

func (w *WorkspaceHandler) GetWorkspaceLogic(in GetWorkspaceInput) (*upstream.Response, error) {
	if !in.Session.Valid(w.now()) {
		return nil, shared.ErrUnauthorized
	}

	path, err := upstream.JoinPath("workspaces", in.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("workspace path: %w", err)
	}

	// The upstream expects a JSON content type even on GET.
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", shared.BearerHeader(in.Session.User.APIKey))

	res, err := w.Upstream.Fetch(upstream.WithRoute(in.Ctx, workspaceRoute), path, http.MethodGet, header)
	if err != nil {
		return nil, fmt.Errorf("fetch workspace %s: %w", in.WorkspaceID, err)
	}
	w.Log.Debugw("Workspace fetched", "path", path, "status_code", res.StatusCode)
	return res, nil
}
