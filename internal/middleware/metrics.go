package middleware

import (
	"fmt"
	"time"

	"frontend-api/internal/ctx"
	"frontend-api/internal/metrics"
	"frontend-api/internal/shared"

	"github.com/aidarkhanov/nanoid"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewTrackMiddleware wraps every request in a *ctx.Context carrying a request
// scoped logger, and logs one line when the request ends.
func NewTrackMiddleware(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID, _ := nanoid.Generate(shared.RequestIDAlphabet, shared.RequestIDLength)
			reqID = "req_" + reqID
			externalID := c.Request().Header.Get(shared.ExternalIDHeader)
			logger := log.With(
				"request_id", reqID,
				"external_id", externalID,
			)

			cc := &ctx.Context{
				Context: c,
				Log:     logger,
				Reqid:   reqID,
				LogValues: &ctx.ContextLogValues{
					RequestID:  reqID,
					ExternalID: externalID,
					StartTime:  time.Now(),
					Path:       c.Path(),
				},
			}
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			err := next(cc)
			if err != nil {
				cc.LogValues.AddError(err)
				c.Error(err)
			}

			cc.LogValues.StatusCode = cc.Response().Status
			cc.LogValues.RequestDuration = time.Since(cc.LogValues.StartTime)
			switch {
			case cc.LogValues.StatusCode >= 500:
				log.Errorw("end_of_request", "request", cc.LogValues)
			case cc.LogValues.StatusCode >= 400:
				log.Warnw("end_of_request", "request", cc.LogValues)
			default:
				log.Infow("end_of_request", "request", cc.LogValues)
			}
			metrics.ResponseCodes.WithLabelValues(cc.Path(), fmt.Sprintf("%d", cc.Response().Status)).Inc()
			return nil
		}
	}
}

func NewRecoverMiddleware(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return emw.RecoverWithConfig(emw.RecoverConfig{
		StackSize: 1 << 10, // 1 KB
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			defer func() {
				_ = log.Sync()
			}()
			log.Errorw("Api Panic", "error", err.Error(), "stack", string(stack))
			return c.JSON(500, map[string]string{"error": shared.ErrInternalServerError.Err.Error()})
		},
	})
}
