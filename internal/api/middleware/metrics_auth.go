package middleware

import (
	"crypto/subtle"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MetricsConfig はメトリクス認証の設定
type MetricsConfig struct {
	User     string
	Password string
}

// LoadMetricsConfig は環境変数 METRICS_USER / METRICS_PASSWORD から設定を読み込む
func LoadMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		User:     os.Getenv("METRICS_USER"),
		Password: os.Getenv("METRICS_PASSWORD"),
	}
}

// IsEnabled は認証が有効かどうかを返す
func (c *MetricsConfig) IsEnabled() bool {
	return c.User != "" && c.Password != ""
}

// MetricsBasicAuth は /metrics エンドポイント用の Basic 認証ミドルウェア
// 認証情報が未設定の場合は素通しする（ローカル開発用）
func MetricsBasicAuth(cfg *MetricsConfig) echo.MiddlewareFunc {
	if !cfg.IsEnabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.User)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) == 1
		return userMatch && passMatch, nil
	})
}
