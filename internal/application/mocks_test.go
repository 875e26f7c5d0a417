package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// === Mock implementations ===

// MockBookingRepository implements booking.Repository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Exists(ctx context.Context, id seat.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Get(ctx context.Context, id seat.ID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) ExistsReference(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateMeal(ctx context.Context, id seat.ID, meal booking.Meal) error {
	args := m.Called(ctx, id, meal)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id seat.ID, lastName string) error {
	args := m.Called(ctx, id, lastName)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context) ([]*booking.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByLastName(ctx context.Context, lastName string) ([]*booking.Booking, error) {
	args := m.Called(ctx, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSeatLocker implements SeatLocker
type MockSeatLocker struct {
	mock.Mock
}

func (m *MockSeatLocker) LockSeat(ctx context.Context, id seat.ID) (func(), error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// MockSeatMapCache implements SeatMapCache
type MockSeatMapCache struct {
	mock.Mock
}

func (m *MockSeatMapCache) Get(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSeatMapCache) Set(ctx context.Context, seatMap string) error {
	args := m.Called(ctx, seatMap)
	return args.Error(0)
}

func (m *MockSeatMapCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher implements booking.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, e booking.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
