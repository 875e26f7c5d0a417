package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
)

const (
	// metricsPath 自身へのスクレイプは計測しない
	metricsPath = "/metrics"
	// unmatchedRoute はどのルートにも一致しなかったリクエストのラベル
	unmatchedRoute = "unmatched"
)

// PrometheusMiddleware はHTTPメトリクスを収集するミドルウェア
// パスはルート定義（/api/v1/seats/:seat など）で集計し、座席コードごとにラベルを増やさない
func PrometheusMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == metricsPath {
				return next(c)
			}
			start := time.Now()

			err := next(c)

			route := routeLabel(c, err)
			method := c.Request().Method
			m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusOf(c, err))).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// statusOf はエラーハンドラーが書き込む前のステータスを含めて応答コードを返す
func statusOf(c echo.Context, err error) int {
	var he *echo.HTTPError
	if err != nil && errors.As(err, &he) {
		return he.Code
	}
	return c.Response().Status
}

// routeLabel はルーターで一致しなかったリクエストを1つのラベルにまとめる
func routeLabel(c echo.Context, err error) string {
	if errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
		return unmatchedRoute
	}
	if p := c.Path(); p != "" {
		return p
	}
	return unmatchedRoute
}
