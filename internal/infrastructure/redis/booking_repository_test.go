package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

func setupBookingRepository(t *testing.T) *BookingRepository {
	client := setupTestRedis(t)
	prefix := fmt.Sprintf("test:%d:", time.Now().UnixNano())
	repo := NewBookingRepository(client, prefix)

	t.Cleanup(func() {
		ctx := context.Background()
		keys, err := client.Keys(ctx, prefix+"*").Result()
		if err == nil && len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})
	return repo
}

func newTestBooking(t *testing.T, code, lastName, ref string) *booking.Booking {
	t.Helper()
	b := booking.NewBooking(seat.MustParse(code), booking.Passenger{
		FirstName:  "Ada",
		LastName:   lastName,
		PassportID: "P" + ref,
	}, ref)
	require.NoError(t, b.Validate())
	return b
}

func TestBookingRepository_InsertAndGet(t *testing.T) {
	repo := setupBookingRepository(t)
	ctx := context.Background()

	b := newTestBooking(t, "12C", "Lovelace", "AB12CD34")
	require.NoError(t, repo.Insert(ctx, b))

	got, err := repo.Get(ctx, b.Seat)
	require.NoError(t, err)
	assert.Equal(t, "AB12CD34", got.Reference)
	assert.Equal(t, "LOVELACE", got.LastName)
	assert.Equal(t, booking.MealNone, got.Meal)
	assert.True(t, b.CreatedAt.Equal(got.CreatedAt))

	exists, err := repo.Exists(ctx, b.Seat)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsReference(ctx, "AB12CD34")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBookingRepository_InsertDuplicates(t *testing.T) {
	repo := setupBookingRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newTestBooking(t, "1A", "Smith", "AAAA1111")))

	t.Run("同じ座席は重複エラー", func(t *testing.T) {
		err := repo.Insert(ctx, newTestBooking(t, "1A", "Jones", "BBBB2222"))
		assert.ErrorIs(t, err, booking.ErrDuplicateSeat)
	})

	t.Run("同じ予約番号は重複エラー", func(t *testing.T) {
		err := repo.Insert(ctx, newTestBooking(t, "1B", "Jones", "AAAA1111"))
		assert.ErrorIs(t, err, booking.ErrDuplicateReference)

		exists, err := repo.Exists(ctx, seat.MustParse("1B"))
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestBookingRepository_Get_NotFound(t *testing.T) {
	repo := setupBookingRepository(t)

	_, err := repo.Get(context.Background(), seat.MustParse("80F"))
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestBookingRepository_UpdateMeal(t *testing.T) {
	repo := setupBookingRepository(t)
	ctx := context.Background()
	b := newTestBooking(t, "20D", "Hopper", "MEAL0001")
	require.NoError(t, repo.Insert(ctx, b))

	require.NoError(t, repo.UpdateMeal(ctx, b.Seat, booking.MealVegan))

	got, err := repo.Get(ctx, b.Seat)
	require.NoError(t, err)
	assert.Equal(t, booking.MealVegan, got.Meal)

	err = repo.UpdateMeal(ctx, seat.MustParse("21D"), booking.MealLight)
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestBookingRepository_Delete(t *testing.T) {
	repo := setupBookingRepository(t)
	ctx := context.Background()
	b := newTestBooking(t, "30A", "Turing", "DEL00001")
	require.NoError(t, repo.Insert(ctx, b))

	t.Run("姓が一致しない場合は削除しない", func(t *testing.T) {
		err := repo.Delete(ctx, b.Seat, "Church")
		assert.ErrorIs(t, err, booking.ErrNoMatch)

		exists, err := repo.Exists(ctx, b.Seat)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("姓が一致すれば削除し予約番号も解放する", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, b.Seat, "turing"))

		exists, err := repo.Exists(ctx, b.Seat)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsReference(ctx, "DEL00001")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("予約がなければErrNotFound", func(t *testing.T) {
		err := repo.Delete(ctx, b.Seat, "Turing")
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})
}

func TestBookingRepository_List(t *testing.T) {
	repo := setupBookingRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newTestBooking(t, "10B", "Smith", "LIST0001")))
	require.NoError(t, repo.Insert(ctx, newTestBooking(t, "2F", "Jones", "LIST0002")))
	require.NoError(t, repo.Insert(ctx, newTestBooking(t, "10A", "Smith", "LIST0003")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2F", all[0].Seat.String())
	assert.Equal(t, "10A", all[1].Seat.String())
	assert.Equal(t, "10B", all[2].Seat.String())

	smiths, err := repo.ListByLastName(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, smiths, 2)
	assert.Equal(t, "10A", smiths[0].Seat.String())
}

func TestBookingRepository_ConcurrentInsert(t *testing.T) {
	repo := setupBookingRepository(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := booking.NewBooking(seat.MustParse("50E"), booking.Passenger{
				FirstName: "P", LastName: "Racer", PassportID: "X",
			}, fmt.Sprintf("RACE%04d", i))
			errs <- repo.Insert(ctx, b)
		}(i)
	}
	wg.Wait()
	close(errs)

	var success, duplicate int
	for err := range errs {
		switch {
		case err == nil:
			success++
		case errors.Is(err, booking.ErrDuplicateSeat):
			duplicate++
		default:
			t.Errorf("予期しないエラー: %v", err)
		}
	}
	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, duplicate)
}
