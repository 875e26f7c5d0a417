package e2e

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"github.com/loulwahalabdely/FC723-Project1/internal/api"
	"github.com/loulwahalabdely/FC723-Project1/internal/api/handler"
	"github.com/loulwahalabdely/FC723-Project1/internal/api/middleware"
	"github.com/loulwahalabdely/FC723-Project1/internal/bootstrap"
	"github.com/loulwahalabdely/FC723-Project1/internal/config"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo    *echo.Echo
	App     *bootstrap.App
	Metrics *metrics.Metrics
	Cleanup func()
}

// NewTestServer はインメモリの予約ストアでサーバーを組み立てる
// テストごとに独立したストアとメトリクスレジストリを使う
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := &config.Config{
		Env:     "test",
		Storage: config.StorageConfig{Backend: config.StorageMemory},
		Booking: config.BookingConfig{VerifyLastNameOnFree: true},
		Flight:  config.FlightConfig{Carrier: "Apache Airlines", Number: "AP723"},
	}
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	app, err := bootstrap.New(cfg, m)
	require.NoError(t, err)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e, m)

	handler.RegisterRoutes(e,
		handler.NewBookingHandler(app.Service, cfg.Flight),
		handler.NewSeatHandler(app.Service),
		handler.NewHealthHandler(app.Service),
	)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return &TestServer{Echo: e, App: app, Metrics: m, Cleanup: app.Close}
}

// Request はHTTPリクエストを実行
func (s *TestServer) Request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}
