package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
)

// requestBodyLimit は予約APIのリクエストボディ上限（乗客情報のみ）
const requestBodyLimit = "64K"

// SetupMiddleware は共通ミドルウェアを設定する
// m が nil の場合はHTTPメトリクスを収集しない
func SetupMiddleware(e *echo.Echo, m *metrics.Metrics) {
	e.Use(RequestIDMiddleware())
	e.Use(RequestLogger())
	if m != nil {
		e.Use(PrometheusMiddleware(m))
	}

	// パニックはスタックトレースを zap に出力して 500 にする
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
			return err
		},
	}))

	e.Use(middleware.BodyLimit(requestBodyLimit))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderXRequestID},
		ExposeHeaders: []string{echo.HeaderXRequestID, echo.HeaderContentDisposition},
	}))
}
