package middleware

import (
	"strconv"
	"time"

	"orderdesk/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// リクエストごとにアクセスログとメトリクスを記録する。
func RequestLogger(log *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// echo のエラーハンドラでステータスを確定させる
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			elapsed := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.ObserveRequest(req.Method, route, strconv.Itoa(res.Status), float64(elapsed.Microseconds())/1000)

			log.Info("request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", elapsed),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		}
	}
}
