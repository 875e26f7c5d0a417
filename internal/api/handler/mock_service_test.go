package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/loulwahalabdely/FC723-Project1/internal/application"
	"github.com/loulwahalabdely/FC723-Project1/internal/config"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// MockBookingService はBookingServiceInterfaceのモック
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CheckAvailability(ctx context.Context, raw string) (*application.AvailabilityResult, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.AvailabilityResult), args.Error(1)
}

func (m *MockBookingService) BookSeat(ctx context.Context, raw string, in application.PassengerInput) (*booking.Booking, error) {
	args := m.Called(ctx, raw, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) FreeSeat(ctx context.Context, raw, lastName string) (seat.ID, error) {
	args := m.Called(ctx, raw, lastName)
	return args.Get(0).(seat.ID), args.Error(1)
}

func (m *MockBookingService) SelectMeal(ctx context.Context, raw, choice string) (*application.MealSelection, error) {
	args := m.Called(ctx, raw, choice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.MealSelection), args.Error(1)
}

func (m *MockBookingService) ShowStatus(ctx context.Context, lastName string) (*application.StatusReport, error) {
	args := m.Called(ctx, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.StatusReport), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, raw, lastName string) (*booking.Booking, error) {
	args := m.Called(ctx, raw, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) SeatMap(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPinger はPingerのモック
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var (
	testFlight   = config.FlightConfig{Carrier: "Apache Airlines", Number: "AP723"}
	errStoreDown = booking.NewStorageError("ping", errors.New("connection refused"))
)

// newTestRouter はモックサービスでルートを登録したEchoを返す
func newTestRouter(svc *MockBookingService, store *MockPinger) *echo.Echo {
	e := NewTestEcho()
	RegisterRoutes(e, NewBookingHandler(svc, testFlight), NewSeatHandler(svc), NewHealthHandler(store))
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newTestBooking(code, lastName, ref string) *booking.Booking {
	return booking.NewBooking(seat.MustParse(code), booking.Passenger{
		FirstName: "John", LastName: lastName, PassportID: "X1",
	}, ref)
}
