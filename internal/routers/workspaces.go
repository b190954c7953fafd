package routers

import (
	"frontend-api/internal/ctx"
	"frontend-api/internal/handlers/workspaces"
	"frontend-api/internal/middleware"

	"github.com/labstack/echo/v4"
)

type WorkspaceRouter struct {
	wh     *workspaces.WorkspaceHandler
	policy ResponsePolicy
}

// NewWorkspaceRouter returns a router answering under policy. Whether
// workspace lookups should hide upstream statuses behind a 200 is an open
// product question, so both behaviours stay selectable.
func NewWorkspaceRouter(wh *workspaces.WorkspaceHandler, policy ResponsePolicy) *WorkspaceRouter {
	return &WorkspaceRouter{wh: wh, policy: policy}
}

func (wr *WorkspaceRouter) GetWorkspace(cc echo.Context) error {
	c := cc.(*ctx.Context)

	workspaceID, err := pathParam(c, "workspaceId")
	if err != nil {
		return writeError(c, err)
	}

	res, err := wr.wh.GetWorkspaceLogic(workspaces.GetWorkspaceInput{
		Ctx:         c.Request().Context(),
		Session:     c.Session,
		WorkspaceID: workspaceID,
	})
	if err != nil {
		return writeError(c, err)
	}
	c.LogValues.Upstream = "workspace"
	return writeUpstream(c, res, wr.policy)
}

// RegisterWorkspaceRoutes registers all workspace routes
func RegisterWorkspaceRoutes(e *echo.Group, wh *workspaces.WorkspaceHandler, smw *middleware.SessionMiddleware, policy ResponsePolicy) {
	wr := NewWorkspaceRouter(wh, policy)

	requireSession := e.Group("", smw.ExtractSession, smw.RequireSession)
	requireSession.GET("/workspaces/:workspaceId", wr.GetWorkspace)
}
