package handler

import (
	"context"

	"github.com/loulwahalabdely/FC723-Project1/internal/application"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CheckAvailability(ctx context.Context, raw string) (*application.AvailabilityResult, error)
	BookSeat(ctx context.Context, raw string, in application.PassengerInput) (*booking.Booking, error)
	FreeSeat(ctx context.Context, raw, lastName string) (seat.ID, error)
	SelectMeal(ctx context.Context, raw, choice string) (*application.MealSelection, error)
	ShowStatus(ctx context.Context, lastName string) (*application.StatusReport, error)
	GetBooking(ctx context.Context, raw, lastName string) (*booking.Booking, error)
	SeatMap(ctx context.Context) (string, error)
}

// Pinger は依存先の疎通確認
type Pinger interface {
	Ping(ctx context.Context) error
}
