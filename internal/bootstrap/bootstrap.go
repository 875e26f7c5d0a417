// Package bootstrap は設定から予約ストアと予約サービスを組み立てる
package bootstrap

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/application"
	"github.com/loulwahalabdely/FC723-Project1/internal/config"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
	"github.com/loulwahalabdely/FC723-Project1/internal/infrastructure/memory"
	"github.com/loulwahalabdely/FC723-Project1/internal/infrastructure/postgres"
	"github.com/loulwahalabdely/FC723-Project1/internal/infrastructure/rabbitmq"
	redisinfra "github.com/loulwahalabdely/FC723-Project1/internal/infrastructure/redis"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
)

const redisKeyPrefix = "booking:"

// App は組み立て済みの依存関係
type App struct {
	Config    *config.Config
	Inventory *seat.Inventory
	Store     booking.Repository
	Service   *application.BookingService

	closers []func()
}

// New は設定に従って予約ストアと予約サービスを組み立てる
// Redis・RabbitMQ は有効な場合のみ接続する
func New(cfg *config.Config, m *metrics.Metrics) (*App, error) {
	app := &App{Config: cfg, Inventory: seat.DefaultInventory()}

	var redisClient *redis.Client
	if cfg.Storage.Backend == config.StorageRedis || cfg.Redis.Enabled {
		client, err := redisinfra.NewClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("Redis接続エラー: %w", err)
		}
		redisClient = client
		app.onClose(func() { _ = client.Close() })
	}

	store, err := app.openStore(redisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	opts := []application.Option{
		application.WithLastNameVerification(cfg.Booking.VerifyLastNameOnFree),
		application.WithMetrics(m),
	}
	if cfg.Redis.Enabled {
		locker := redisinfra.NewSeatLocker(redisinfra.NewLockManager(redisClient), cfg.Booking.SeatLockTTL, m)
		cache := redisinfra.NewSeatMapCache(redisClient, cfg.Flight.Number, cfg.Booking.SeatMapCacheTTL)
		opts = append(opts, application.WithSeatLocker(locker), application.WithSeatMapCache(cache))
		logger.Info("座席ロックと座席表キャッシュを有効化", zap.Duration("lock_ttl", cfg.Booking.SeatLockTTL))
	}
	if cfg.RabbitMQ.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("RabbitMQ接続エラー: %w", err)
		}
		app.onClose(func() { _ = pub.Close() })
		opts = append(opts, application.WithEventPublisher(pub))
		logger.Info("予約イベントの送信を有効化", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}

	app.Service = application.NewBookingService(store, app.Inventory, opts...)
	return app, nil
}

func (a *App) openStore(redisClient *redis.Client) (booking.Repository, error) {
	cfg := a.Config
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		logger.Info("インメモリの予約ストアを使用")
		return memory.NewBookingRepository(), nil

	case config.StoragePostgres:
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("DB接続エラー: %w", err)
		}
		a.onClose(func() { _ = db.Close() })
		if err := postgres.RunMigrations(db.DB, cfg.Storage.MigrationsPath); err != nil {
			return nil, fmt.Errorf("マイグレーションエラー: %w", err)
		}
		logger.Info("PostgreSQLの予約ストアを使用", zap.String("database", cfg.Database.DBName))
		return postgres.NewBookingRepository(db), nil

	case config.StorageRedis:
		logger.Info("Redisの予約ストアを使用", zap.String("addr", cfg.Redis.Addr()))
		return redisinfra.NewBookingRepository(redisClient, redisKeyPrefix), nil
	}
	return nil, fmt.Errorf("未対応の予約ストア: %q", cfg.Storage.Backend)
}

func (a *App) onClose(f func()) {
	a.closers = append(a.closers, f)
}

// Close は接続を開いた順と逆順に閉じる
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
