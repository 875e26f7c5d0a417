package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// SeatMapCache は描画済み座席表のキャッシュを管理する
type SeatMapCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSeatMapCache は新しいSeatMapCacheインスタンスを作成する
func NewSeatMapCache(client *redis.Client, flightNumber string, ttl time.Duration) *SeatMapCache {
	return &SeatMapCache{
		client: client,
		key:    fmt.Sprintf("seatmap:%s", flightNumber),
		ttl:    ttl,
	}
}

// Get は座席表をキャッシュから取得する
func (c *SeatMapCache) Get(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, c.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// Set は座席表をキャッシュに保存する
func (c *SeatMapCache) Set(ctx context.Context, seatMap string) error {
	if err := c.client.Set(ctx, c.key, seatMap, c.ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は座席表のキャッシュを無効化する
func (c *SeatMapCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}
