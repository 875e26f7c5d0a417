package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 予約操作の総数（operation: check/book/free/meal/status, result: success/rejected/error）
	BookingOperationsTotal *prometheus.CounterVec

	// 座席ロックの操作時間（operation: acquire/release, status: success/failed）
	SeatLockDuration *prometheus.HistogramVec

	// 有効な予約数
	LiveBookings prometheus.Gauge

	// 座席表キャッシュの参照結果（result: hit/miss）
	SeatMapCacheTotal *prometheus.CounterVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BookingOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_operations_total",
				Help: "Total number of seat booking operations",
			},
			[]string{"operation", "result"},
		),
		SeatLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seat_lock_duration_seconds",
				Help:    "Time spent on per-seat lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		LiveBookings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "live_bookings",
				Help: "Current number of live seat bookings",
			},
		),
		SeatMapCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seat_map_cache_total",
				Help: "Seat map cache lookups",
			},
			[]string{"result"},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingOperationsTotal,
		m.SeatLockDuration,
		m.LiveBookings,
		m.SeatMapCacheTotal,
	)

	return m
}

// ObserveOperation は予約操作の結果を記録する（nil の場合は何もしない）
func (m *Metrics) ObserveOperation(operation, result string) {
	if m == nil {
		return
	}
	m.BookingOperationsTotal.WithLabelValues(operation, result).Inc()
}

// SetLiveBookings は有効な予約数を記録する
func (m *Metrics) SetLiveBookings(n int) {
	if m == nil {
		return
	}
	m.LiveBookings.Set(float64(n))
}

// ObserveCache は座席表キャッシュの参照結果を記録する
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SeatMapCacheTotal.WithLabelValues(result).Inc()
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
