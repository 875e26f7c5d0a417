package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/api"
	"github.com/loulwahalabdely/FC723-Project1/internal/api/handler"
	"github.com/loulwahalabdely/FC723-Project1/internal/api/middleware"
	"github.com/loulwahalabdely/FC723-Project1/internal/bootstrap"
	"github.com/loulwahalabdely/FC723-Project1/internal/config"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
	"github.com/loulwahalabdely/FC723-Project1/internal/worker"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.Sync()

	m := metrics.Init()

	app, err := bootstrap.New(cfg, m)
	if err != nil {
		logger.Fatal("初期化エラー", zap.Error(err))
	}
	defer app.Close()

	// Echo インスタンス作成
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// ミドルウェア設定
	middleware.SetupMiddleware(e, m)

	handler.RegisterRoutes(e,
		handler.NewBookingHandler(app.Service, cfg.Flight),
		handler.NewSeatHandler(app.Service),
		handler.NewHealthHandler(app.Service),
	)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(middleware.LoadMetricsConfig()))

	// 予約数の定期集計
	workerCtx, stopWorker := context.WithCancel(context.Background())
	reporter := worker.NewLiveBookingsReporter(app.Service, m, cfg.Worker.StatsInterval, app.Inventory.BookableCount())
	go reporter.Start(workerCtx)

	// サーバー起動
	go func() {
		logger.Info("サーバー起動",
			zap.String("port", cfg.Server.Port),
			zap.String("storage", string(cfg.Storage.Backend)),
			zap.String("flight", cfg.Flight.Number),
		)
		if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")
	reporter.Stop()
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		return
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
