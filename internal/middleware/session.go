// Package middleware defines echo middleware shared by all routes
package middleware

import (
	"net/http"

	"frontend-api/internal/ctx"
	"frontend-api/internal/session"
	"frontend-api/internal/shared"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware attaches the caller's session to *ctx.Context. Routes
// behind it must run under NewTrackMiddleware.
type SessionMiddleware struct {
	resolver   session.Resolver
	cookieName string
}

func NewSessionMiddleware(resolver session.Resolver, cookieName string) *SessionMiddleware {
	if cookieName == "" {
		cookieName = shared.DefaultSessionCookie
	}
	return &SessionMiddleware{resolver: resolver, cookieName: cookieName}
}

// ExtractSession resolves the session if one is presented. It never rejects.
func (m *SessionMiddleware) ExtractSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(cc echo.Context) error {
		c := cc.(*ctx.Context)
		c.Session = nil

		token, err := shared.ExtractSessionToken(c, m.cookieName)
		if err != nil {
			return next(c)
		}
		s, err := m.resolver.Resolve(c.Request().Context(), token)
		if err != nil {
			c.LogValues.AddError(err)
			return next(c)
		}
		c.Session = s
		c.LogValues.UserID = s.User.ID
		c.Log = c.Log.With("user_id", s.User.ID)
		return next(c)
	}
}

// RequireSession answers 401 when ExtractSession found no session.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(cc echo.Context) error {
		c := cc.(*ctx.Context)
		if c.Session == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": shared.ErrUnauthorized.Err.Error()})
		}
		return next(c)
	}
}
