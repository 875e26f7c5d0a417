package middleware

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
)

// redactedParams はログに値を残さないクエリパラメータ（乗客の姓）
var redactedParams = []string{"last_name"}

// RequestLogger はリクエストの構造化ログを出力するミドルウェア
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = res.Header().Get(echo.HeaderXRequestID)
			}

			err := next(c)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", req.Method),
				zap.String("route", c.Path()),
				zap.String("path", req.URL.Path),
				zap.String("query", redactQuery(req.URL.Query())),
				zap.Int("status", res.Status),
				zap.Int64("size", res.Size),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if code := c.Param("seat"); code != "" {
				fields = append(fields, logger.Seat(code))
			}

			switch {
			case err != nil:
				fields = append(fields, zap.Error(err))
				logger.Error("request failed", fields...)
			case res.Status >= 500:
				logger.Error("server error", fields...)
			case res.Status >= 400:
				logger.Warn("client error", fields...)
			default:
				logger.Info("request completed", fields...)
			}
			return err
		}
	}
}

// redactQuery は乗客を特定できる値を伏せたクエリ文字列を返す
func redactQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	for _, key := range redactedParams {
		if q.Has(key) {
			q.Set(key, "***")
		}
	}
	return q.Encode()
}

// RequestIDMiddleware はリクエストIDを生成・付与するミドルウェア
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = generateRequestID()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			return next(c)
		}
	}
}

func generateRequestID() string {
	return uuid.NewString()
}
