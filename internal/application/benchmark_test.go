package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// bookableCodes は予約可能な全座席のコードを行・列順で返す
func bookableCodes(inv *seat.Inventory) []string {
	codes := make([]string, 0, inv.BookableCount())
	for row := seat.MinRow; row <= seat.MaxRow; row++ {
		for _, col := range seat.Columns {
			id := seat.ID{Row: row, Column: col}
			if !inv.IsStorage(id) {
				codes = append(codes, id.String())
			}
		}
	}
	return codes
}

// TestBenchmark_FullCabin は満席までの同時予約の所要時間を計測する
func TestBenchmark_FullCabin(t *testing.T) {
	if testing.Short() {
		t.Skip("ベンチマークテストはshortモードではスキップ")
	}

	ctx := context.Background()
	svc, repo := newTestService()
	codes := bookableCodes(seat.DefaultInventory())
	require.Len(t, codes, 474)

	t.Run("全座席を同時に予約", func(t *testing.T) {
		const workers = 16
		var (
			wg        sync.WaitGroup
			succeeded int64
			next      int64 = -1
		)

		start := time.Now()
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for {
					i := atomic.AddInt64(&next, 1)
					if i >= int64(len(codes)) {
						return
					}
					_, err := svc.BookSeat(ctx, codes[i], PassengerInput{
						FirstName: "Bench", LastName: fmt.Sprintf("Worker%d", w), PassportID: fmt.Sprintf("B%d", i),
					})
					if err == nil {
						atomic.AddInt64(&succeeded, 1)
					}
				}
			}(w)
		}
		wg.Wait()
		elapsed := time.Since(start)

		t.Logf("予約: %d席 / %v (%.0f 件/秒)", succeeded, elapsed, float64(succeeded)/elapsed.Seconds())
		assert.Equal(t, int64(474), succeeded)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 474)
	})

	t.Run("満席後の座席表", func(t *testing.T) {
		start := time.Now()
		m, err := svc.SeatMap(ctx)
		require.NoError(t, err)
		t.Logf("座席表の生成: %v", time.Since(start))

		for _, code := range codes {
			assert.NotContains(t, m, " "+code+" ")
		}
	})
}

func BenchmarkBookingQueries(b *testing.B) {
	ctx := context.Background()
	svc, _ := newTestService()
	for i, code := range bookableCodes(seat.DefaultInventory()) {
		if i%2 == 0 {
			_, _ = svc.BookSeat(ctx, code, johnDoe)
		}
	}

	b.Run("CheckAvailability", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			svc.CheckAvailability(ctx, "40C")
		}
	})

	b.Run("SeatMap", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			svc.SeatMap(ctx)
		}
	})

	b.Run("ShowStatus", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			svc.ShowStatus(ctx, "doe")
		}
	})
}
