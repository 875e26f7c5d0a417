package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
)

var (
	ErrLockNotAcquired = errors.New("ロックを取得できませんでした")
	ErrLockNotOwned    = errors.New("ロックの所有者ではありません")
)

// 所有者確認と削除をアトミックに実行する
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

var extendScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// DistributedLock は Redis を使用した分散ロック
type DistributedLock struct {
	client *redis.Client
	key    string
	value  string
	ttl    time.Duration
}

// LockManager は分散ロックを管理する
type LockManager struct {
	client *redis.Client
}

func NewLockManager(client *redis.Client) *LockManager {
	return &LockManager{client: client}
}

// AcquireLock はロックを取得する
func (m *LockManager) AcquireLock(ctx context.Context, key string, ttl time.Duration) (*DistributedLock, error) {
	lockKey := fmt.Sprintf("lock:%s", key)
	lockValue := uuid.New().String()

	// SetNX を使用してロックを取得（キーが存在しない場合のみ設定）
	ok, err := m.client.SetNX(ctx, lockKey, lockValue, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}

	return &DistributedLock{
		client: m.client,
		key:    lockKey,
		value:  lockValue,
		ttl:    ttl,
	}, nil
}

// AcquireLockWithRetry はリトライ付きでロックを取得する
func (m *LockManager) AcquireLockWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (*DistributedLock, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		lock, err := m.AcquireLock(ctx, key, ttl)
		if err == nil {
			return lock, nil
		}
		lastErr = err
		if !errors.Is(err, ErrLockNotAcquired) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, lastErr
}

// Release はロックを解放する
func (l *DistributedLock) Release(ctx context.Context) error {
	result, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.value).Int()
	if err != nil {
		return fmt.Errorf("ロック解放に失敗: %w", err)
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	return nil
}

// Extend はロックの有効期限を延長する
func (l *DistributedLock) Extend(ctx context.Context, ttl time.Duration) error {
	result, err := extendScript.Run(ctx, l.client, []string{l.key}, l.value, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("ロック延長に失敗: %w", err)
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	l.ttl = ttl
	return nil
}

// SeatLocker は座席単位のロックを提供する
// 複数インスタンス構成で同一座席への予約・解放・機内食変更を直列化する
type SeatLocker struct {
	manager    *LockManager
	ttl        time.Duration
	maxRetries int
	retryDelay time.Duration
	metrics    *metrics.Metrics
}

// NewSeatLocker は SeatLocker を作成する
func NewSeatLocker(manager *LockManager, ttl time.Duration, m *metrics.Metrics) *SeatLocker {
	return &SeatLocker{
		manager:    manager,
		ttl:        ttl,
		maxRetries: 3,
		retryDelay: 100 * time.Millisecond,
		metrics:    m,
	}
}

// LockSeat は座席のロックを取得し、解放関数を返す
func (s *SeatLocker) LockSeat(ctx context.Context, id seat.ID) (func(), error) {
	start := time.Now()
	lock, err := s.manager.AcquireLockWithRetry(ctx, "seat:"+id.String(), s.ttl, s.maxRetries, s.retryDelay)
	s.observe("acquire", start, err)
	if err != nil {
		return nil, err
	}
	return func() {
		start := time.Now()
		// 呼び出し元のコンテキストがキャンセル済みでも解放できるようにする
		err := lock.Release(context.WithoutCancel(ctx))
		s.observe("release", start, err)
	}, nil
}

func (s *SeatLocker) observe(op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.SeatLockDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}
