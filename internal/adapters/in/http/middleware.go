package http

import (
	"log/slog"
	"strconv"
	"time"

	"pizzeria/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Observe logs every request and records it in the request metrics. m may
// be nil.
func Observe(m *metrics.Metrics, logger *slog.Logger) echo.MiddlewareFunc {
	log := logger.With("component", "http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)

			req := c.Request()
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			if m != nil {
				m.Requests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
				m.LatencyMS.WithLabelValues(route).Observe(float64(elapsed.Microseconds()) / 1000)
			}

			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			}
			log.LogAttrs(req.Context(), level, "request",
				slog.String("method", req.Method),
				slog.String("route", route),
				slog.String("uri", req.RequestURI),
				slog.Int("status", status),
				slog.Duration("latency", elapsed),
				slog.String("remote_ip", c.RealIP()),
			)
			return nil
		}
	}
}
