package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// BookingRepository は予約ストアのインメモリ実装
// プロセス終了時に内容は失われる
type BookingRepository struct {
	mu         sync.RWMutex
	bySeat     map[seat.ID]*booking.Booking
	references map[string]seat.ID
}

// NewBookingRepository は空の BookingRepository を作成する
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bySeat:     make(map[seat.ID]*booking.Booking),
		references: make(map[string]seat.ID),
	}
}

func (r *BookingRepository) Exists(ctx context.Context, id seat.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bySeat[id]
	return ok, nil
}

func (r *BookingRepository) Get(ctx context.Context, id seat.ID) (*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bySeat[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return b.Clone(), nil
}

func (r *BookingRepository) ExistsReference(ctx context.Context, reference string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.references[reference]
	return ok, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySeat[b.Seat]; ok {
		return booking.ErrDuplicateSeat
	}
	if _, ok := r.references[b.Reference]; ok {
		return booking.ErrDuplicateReference
	}
	r.bySeat[b.Seat] = b.Clone()
	r.references[b.Reference] = b.Seat
	return nil
}

func (r *BookingRepository) UpdateMeal(ctx context.Context, id seat.ID, meal booking.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bySeat[id]
	if !ok {
		return booking.ErrNotFound
	}
	b.Meal = meal
	b.UpdatedAt = time.Now()
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id seat.ID, lastName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bySeat[id]
	if !ok {
		return booking.ErrNotFound
	}
	if !b.MatchesLastName(lastName) {
		return booking.ErrNoMatch
	}
	delete(r.bySeat, id)
	delete(r.references, b.Reference)
	return nil
}

func (r *BookingRepository) List(ctx context.Context) ([]*booking.Booking, error) {
	return r.filter(func(*booking.Booking) bool { return true }), nil
}

func (r *BookingRepository) ListByLastName(ctx context.Context, lastName string) ([]*booking.Booking, error) {
	return r.filter(func(b *booking.Booking) bool { return b.MatchesLastName(lastName) }), nil
}

func (r *BookingRepository) Ping(ctx context.Context) error {
	return nil
}

// filter は条件に合う予約のコピーを行・列順で返す
func (r *BookingRepository) filter(match func(*booking.Booking) bool) []*booking.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*booking.Booking, 0, len(r.bySeat))
	for _, b := range r.bySeat {
		if match(b) {
			result = append(result, b.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seat.Less(result[j].Seat) })
	return result
}

// インターフェースを満たしているか確認
var _ booking.Repository = (*BookingRepository)(nil)
