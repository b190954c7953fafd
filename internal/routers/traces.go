package routers

import (
	"frontend-api/internal/ctx"
	"frontend-api/internal/handlers/traces"
	"frontend-api/internal/middleware"

	"github.com/labstack/echo/v4"
)

type TraceRouter struct {
	th *traces.TraceHandler
}

func NewTraceRouter(th *traces.TraceHandler) *TraceRouter {
	return &TraceRouter{th: th}
}

func (tr *TraceRouter) GetWorkshopTrace(cc echo.Context) error {
	c := cc.(*ctx.Context)

	projectID, err := pathParam(c, "projectId")
	if err != nil {
		return writeError(c, err)
	}
	pipelineVersionID, err := pathParam(c, "pipelineVersionId")
	if err != nil {
		return writeError(c, err)
	}

	res, err := tr.th.WorkshopTraceLogic(traces.WorkshopTraceInput{
		Ctx:               c.Request().Context(),
		Session:           c.Session,
		ProjectID:         projectID,
		PipelineVersionID: pipelineVersionID,
	})
	if err != nil {
		return writeError(c, err)
	}
	c.LogValues.Upstream = "workshop_trace"
	return writeUpstream(c, res, PolicyPassthrough)
}

// RegisterTraceRoutes registers all trace routes
func RegisterTraceRoutes(e *echo.Group, th *traces.TraceHandler, smw *middleware.SessionMiddleware) {
	tr := NewTraceRouter(th)

	requireSession := e.Group("", smw.ExtractSession, smw.RequireSession)
	requireSession.GET("/projects/:projectId/traces/workshop/:pipelineVersionId", tr.GetWorkshopTrace)
}
