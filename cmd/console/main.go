package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/bootstrap"
	"github.com/loulwahalabdely/FC723-Project1/internal/config"
	"github.com/loulwahalabdely/FC723-Project1/internal/console"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.Sync()

	app, err := bootstrap.New(cfg, metrics.New())
	if err != nil {
		logger.Fatal("初期化エラー", zap.Error(err))
	}
	defer app.Close()

	if err := console.New(app.Service, os.Stdin, os.Stdout).Run(context.Background()); err != nil {
		logger.Error("コンソールの実行に失敗", zap.Error(err))
	}
}
