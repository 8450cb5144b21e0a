package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/wiseconnect/services/metrics"
)

// metricsMiddleware records the count and duration of every request, labelled by route pattern.
// Handler errors are sent through the HTTP error handler first so the final status code is known.
func metricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
