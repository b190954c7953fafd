// Package traces proxies trace lookups to the upstream api on behalf of the
// session's user.
package traces

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"frontend-api/internal/shared"
	"frontend-api/internal/upstream"

	"go.uber.org/zap"
)

const workshopRoute = "workshop_trace"

type TraceHandler struct {
	Log      *zap.SugaredLogger
	Upstream upstream.Fetcher
	now      func() time.Time
}

func NewTraceHandler(fetcher upstream.Fetcher, log *zap.SugaredLogger) *TraceHandler {
	return &TraceHandler{Log: log, Upstream: fetcher, now: time.Now}
}

type WorkshopTraceInput struct {
	Ctx               context.Context
	Session           *shared.Session
	ProjectID         string
	PipelineVersionID string
}

// WorkshopTraceLogic fetches the workshop trace of a pipeline version. The
// upstream response is returned as is, including error statuses; the caller
// closes its body.
func (t *TraceHandler) WorkshopTraceLogic(in WorkshopTraceInput) (*upstream.Response, error) {
	if !in.Session.Valid(t.now()) {
		return nil, shared.ErrUnauthorized
	}

	path, err := upstream.JoinPath("projects", in.ProjectID, "traces", "workshop", in.PipelineVersionID)
	if err != nil {
		return nil, fmt.Errorf("workshop trace path: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", shared.BearerHeader(in.Session.User.APIKey))

	res, err := t.Upstream.Fetch(upstream.WithRoute(in.Ctx, workshopRoute), path, http.MethodGet, header)
	if err != nil {
		return nil, fmt.Errorf("fetch workshop trace: %w", err)
	}
	t.Log.Debugw("Workshop trace fetched", "path", path, "status_code", res.StatusCode)
	return res, nil
}
