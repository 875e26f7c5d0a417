package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
	redisinfra "github.com/loulwahalabdely/FC723-Project1/internal/infrastructure/redis"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/metrics"
	"github.com/loulwahalabdely/FC723-Project1/internal/seatmap"
)

// ErrSeatBusy は座席ロックを取得できなかった場合のエラー（再試行可能）
var ErrSeatBusy = errors.New("座席は他の操作で処理中です。しばらくしてから再試行してください")

// AvailabilityStatus は空席確認の結果
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusBooked      AvailabilityStatus = "booked"
	StatusStorageArea AvailabilityStatus = "storage_area"
)

// Label は表示用の名前を返す
func (s AvailabilityStatus) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusBooked:
		return "Booked"
	case StatusStorageArea:
		return "Storage Area"
	}
	return string(s)
}

type AvailabilityResult struct {
	Seat   seat.ID
	Status AvailabilityStatus
}

type PassengerInput struct {
	FirstName  string
	LastName   string
	PassportID string
}

// MealSelection は機内食選択の結果（Cancelled の場合は変更なし）
type MealSelection struct {
	Seat      seat.ID
	Meal      booking.Meal
	Cancelled bool
}

// StatusReport は予約状況の照会結果
type StatusReport struct {
	LastName string
	Bookings []*booking.Booking
	// NoBookingsForName は姓を指定したが該当する予約がない場合に true
	NoBookingsForName bool
	SeatMap           string
}

// SeatLocker は座席単位の排他を提供する
type SeatLocker interface {
	LockSeat(ctx context.Context, id seat.ID) (func(), error)
}

// SeatMapCache は描画済み座席表のキャッシュ
type SeatMapCache interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, seatMap string) error
	Invalidate(ctx context.Context) error
}

type BookingService struct {
	repo              booking.Repository
	inventory         *seat.Inventory
	generateReference booking.ReferenceGenerator
	verifyLastName    bool
	locker            SeatLocker
	cache             SeatMapCache
	publisher         booking.EventPublisher
	metrics           *metrics.Metrics
}

type Option func(*BookingService)

func WithReferenceGenerator(g booking.ReferenceGenerator) Option {
	return func(s *BookingService) { s.generateReference = g }
}

// WithLastNameVerification が false の場合、解放時に姓を確認しない
func WithLastNameVerification(verify bool) Option {
	return func(s *BookingService) { s.verifyLastName = verify }
}

func WithSeatLocker(l SeatLocker) Option {
	return func(s *BookingService) { s.locker = l }
}

func WithSeatMapCache(c SeatMapCache) Option {
	return func(s *BookingService) { s.cache = c }
}

func WithEventPublisher(p booking.EventPublisher) Option {
	return func(s *BookingService) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BookingService) { s.metrics = m }
}

func NewBookingService(repo booking.Repository, inv *seat.Inventory, opts ...Option) *BookingService {
	s := &BookingService{
		repo:              repo,
		inventory:         inv,
		generateReference: booking.GenerateReference,
		verifyLastName:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckAvailability は座席の状態を返す（状態は変更しない）
func (s *BookingService) CheckAvailability(ctx context.Context, raw string) (result *AvailabilityResult, err error) {
	defer func() { s.observe(OpCheckAvailability, err) }()

	id, err := seat.Parse(raw)
	if err != nil {
		return nil, err
	}
	if s.inventory.IsStorage(id) {
		return &AvailabilityResult{Seat: id, Status: StatusStorageArea}, nil
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return &AvailabilityResult{Seat: id, Status: StatusBooked}, nil
	}
	return &AvailabilityResult{Seat: id, Status: StatusAvailable}, nil
}

// BookSeat は座席を予約し、一意な予約番号を発行する
func (s *BookingService) BookSeat(ctx context.Context, raw string, in PassengerInput) (b *booking.Booking, err error) {
	defer func() { s.observe(OpBookSeat, err) }()

	id, err := seat.Parse(raw)
	if err != nil {
		return nil, err
	}
	if s.inventory.IsStorage(id) {
		return nil, seat.ErrCannotBookStorage
	}

	unlock, err := s.lockSeat(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, booking.ErrAlreadyBooked
	}
	p := booking.Passenger{FirstName: in.FirstName, LastName: in.LastName, PassportID: in.PassportID}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" || strings.TrimSpace(p.PassportID) == "" {
		return nil, booking.ErrPassengerDetailsRequired
	}

	// 予約番号の衝突は新しい番号で再試行する（回数の上限なし）
	for {
		ref, err := s.newReference(ctx)
		if err != nil {
			return nil, err
		}
		b = booking.NewBooking(id, p, ref)
		if err := b.Validate(); err != nil {
			return nil, err
		}
		err = s.repo.Insert(ctx, b)
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, booking.ErrDuplicateReference):
			logger.Debug("予約番号が衝突したため再生成します", logger.Reference(ref))
			continue
		case errors.Is(err, booking.ErrDuplicateSeat):
			return nil, booking.ErrAlreadyBooked
		default:
			return nil, err
		}
	}

	logger.Info("座席を予約しました", logger.Seat(id.String()), logger.Reference(b.Reference))
	s.invalidateSeatMap(ctx)
	s.publish(ctx, booking.EventCreated, b)
	return b, nil
}

// FreeSeat は予約を解放する
// 予約がない場合と姓が一致しない場合は区別せず ErrNoMatchingBooking を返す
func (s *BookingService) FreeSeat(ctx context.Context, raw, lastName string) (id seat.ID, err error) {
	defer func() { s.observe(OpFreeSeat, err) }()

	id, err = seat.Parse(raw)
	if err != nil {
		return seat.ID{}, err
	}

	unlock, err := s.lockSeat(ctx, id)
	if err != nil {
		return seat.ID{}, err
	}
	defer unlock()

	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return seat.ID{}, booking.ErrNoMatchingBooking
		}
		return seat.ID{}, err
	}
	name := lastName
	if !s.verifyLastName {
		name = b.LastName
	}
	if err := s.repo.Delete(ctx, id, name); err != nil {
		if errors.Is(err, booking.ErrNotFound) || errors.Is(err, booking.ErrNoMatch) {
			return seat.ID{}, booking.ErrNoMatchingBooking
		}
		return seat.ID{}, err
	}

	logger.Info("予約を解放しました", logger.Seat(id.String()), logger.Reference(b.Reference))
	s.invalidateSeatMap(ctx)
	s.publish(ctx, booking.EventReleased, b)
	return id, nil
}

// SelectMeal は予約済み座席の機内食を設定する（再選択時は上書き）
func (s *BookingService) SelectMeal(ctx context.Context, raw, choice string) (sel *MealSelection, err error) {
	defer func() { s.observe(OpSelectMeal, err) }()

	id, err := seat.Parse(raw)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockSeat(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, booking.ErrSeatNotReserved
		}
		return nil, err
	}
	if booking.IsMealCancel(choice) {
		return &MealSelection{Seat: id, Meal: b.Meal, Cancelled: true}, nil
	}
	meal, err := booking.ParseMealChoice(choice)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMeal(ctx, id, meal); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, booking.ErrSeatNotReserved
		}
		return nil, err
	}
	b.Meal = meal
	b.UpdatedAt = time.Now()

	logger.Info("機内食を設定しました", logger.Seat(id.String()), zap.String("meal", string(meal)))
	s.publish(ctx, booking.EventMealSelected, b)
	return &MealSelection{Seat: id, Meal: meal}, nil
}

// ShowStatus は姓で絞り込んだ予約一覧と座席表を返す（状態は変更しない）
func (s *BookingService) ShowStatus(ctx context.Context, lastName string) (report *StatusReport, err error) {
	defer func() { s.observe(OpShowStatus, err) }()

	report = &StatusReport{LastName: booking.NormalizeName(lastName)}
	if report.LastName != "" {
		list, err := s.repo.ListByLastName(ctx, report.LastName)
		if err != nil {
			return nil, err
		}
		report.Bookings = list
		report.NoBookingsForName = len(list) == 0
	}

	report.SeatMap, err = s.SeatMap(ctx)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetBooking は姓を確認したうえで座席の予約を返す
func (s *BookingService) GetBooking(ctx context.Context, raw, lastName string) (*booking.Booking, error) {
	id, err := seat.Parse(raw)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, booking.ErrNoMatchingBooking
		}
		return nil, err
	}
	if !b.MatchesLastName(lastName) {
		return nil, booking.ErrNoMatchingBooking
	}
	return b, nil
}

// SeatMap は現在の座席表を返す（キャッシュがあれば利用する）
func (s *BookingService) SeatMap(ctx context.Context) (string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil {
			s.metrics.ObserveCache(true)
			return cached, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("座席表キャッシュ取得エラー", zap.Error(err))
		}
		s.metrics.ObserveCache(false)
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	booked := make(seat.Set, len(all))
	for _, b := range all {
		booked[b.Seat] = struct{}{}
	}
	rendered := seatmap.Render(booked, s.inventory)

	if s.cache != nil {
		if err := s.cache.Set(ctx, rendered); err != nil {
			logger.Warn("座席表キャッシュ保存エラー", zap.Error(err))
		}
	}
	return rendered, nil
}

// CountLiveBookings は有効な予約の件数を返す
func (s *BookingService) CountLiveBookings(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// Ping は予約ストアの疎通を確認する
func (s *BookingService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// newReference は使用中でない予約番号を生成する
func (s *BookingService) newReference(ctx context.Context) (string, error) {
	for {
		ref, err := s.generateReference()
		if err != nil {
			return "", fmt.Errorf("予約番号の生成に失敗: %w", err)
		}
		used, err := s.repo.ExistsReference(ctx, ref)
		if err != nil {
			return "", err
		}
		if !used {
			return ref, nil
		}
	}
}

func (s *BookingService) lockSeat(ctx context.Context, id seat.ID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	unlock, err := s.locker.LockSeat(ctx, id)
	if err != nil {
		if errors.Is(err, redisinfra.ErrLockNotAcquired) {
			return nil, ErrSeatBusy
		}
		return nil, booking.NewStorageError("座席ロック取得", err)
	}
	return unlock, nil
}

func (s *BookingService) invalidateSeatMap(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("座席表キャッシュ無効化エラー", zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, t booking.EventType, b *booking.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, booking.NewEvent(t, b)); err != nil {
		logger.Warn("予約イベント送信エラー", zap.String("type", string(t)), logger.Reference(b.Reference), zap.Error(err))
	}
}

func (s *BookingService) observe(op Operation, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, booking.ErrStorageUnavailable):
		result = "error"
	default:
		result = "rejected"
	}
	s.metrics.ObserveOperation(op.String(), result)
}
