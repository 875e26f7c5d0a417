package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
)

// BookingCounter は有効な予約数を返すインターフェース
type BookingCounter interface {
	CountLiveBookings(ctx context.Context) (int, error)
}

// LiveBookingsReporter は有効な予約数を定期的に集計し、ゲージに反映するワーカー
type LiveBookingsReporter struct {
	counter  BookingCounter
	metrics  *metrics.Metrics
	interval time.Duration
	capacity int
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewLiveBookingsReporter は新しいレポーターを作成
// capacity は予約可能な座席数（ログの空席数算出に使う）
func NewLiveBookingsReporter(
	counter BookingCounter,
	m *metrics.Metrics,
	interval time.Duration,
	capacity int,
) *LiveBookingsReporter {
	return &LiveBookingsReporter{
		counter:  counter,
		metrics:  m,
		interval: interval,
		capacity: capacity,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はレポーターを開始
// 起動直後に1回集計し、以降は interval ごとに集計する
func (r *LiveBookingsReporter) Start(ctx context.Context) {
	logger.Info("予約数レポーター開始",
		zap.Duration("interval", r.interval),
		zap.Int("capacity", r.capacity),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	r.report(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("予約数レポーター停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("予約数レポーター停止（シグナル受信）")
			return
		case <-ticker.C:
			r.report(ctx)
		}
	}
}

// Stop はレポーターを停止
func (r *LiveBookingsReporter) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

func (r *LiveBookingsReporter) report(ctx context.Context) {
	log := logger.Get()

	count, err := r.counter.CountLiveBookings(ctx)
	if err != nil {
		log.Error("予約数の集計に失敗", zap.Error(err))
		return
	}

	r.metrics.SetLiveBookings(count)
	log.Debug("予約数を集計",
		zap.Int("booked", count),
		zap.Int("available", r.capacity-count),
	)
}
