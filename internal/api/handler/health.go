package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler はヘルスチェックハンドラー
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler はHealthHandlerを作成する
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string `json:"status"`
	Store     string `json:"store"`
	Timestamp string `json:"timestamp"`
}

// Check はヘルスチェックを行う
// @Summary ヘルスチェック
// @Description アプリケーションと予約ストアの健全性を確認する
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	resp := HealthResponse{
		Status:    "ok",
		Store:     "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		logger.Warn("予約ストアの疎通確認に失敗", zap.Error(err))
		resp.Status = "degraded"
		resp.Store = "unavailable"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}
