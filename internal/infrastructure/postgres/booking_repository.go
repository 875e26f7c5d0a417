package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

const (
	uniqueViolation      = "23505"
	constraintSeat       = "bookings_pkey"
	constraintReference  = "bookings_reference_key"
	bookingSelectColumns = `seat_id, reference, first_name, last_name, passport_id, meal, created_at, updated_at`
)

type bookingRow struct {
	SeatID     string         `db:"seat_id"`
	Reference  string         `db:"reference"`
	FirstName  string         `db:"first_name"`
	LastName   string         `db:"last_name"`
	PassportID string         `db:"passport_id"`
	Meal       sql.NullString `db:"meal"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r *bookingRow) toEntity() (*booking.Booking, error) {
	id, err := seat.Parse(r.SeatID)
	if err != nil {
		return nil, fmt.Errorf("不正な座席コード %q: %w", r.SeatID, err)
	}
	return &booking.Booking{
		Reference:  r.Reference,
		Seat:       id,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		PassportID: r.PassportID,
		Meal:       booking.Meal(r.Meal.String),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

// 未選択の機内食は NULL で保存する
func mealValue(m booking.Meal) sql.NullString {
	return sql.NullString{String: string(m), Valid: m != booking.MealNone}
}

// BookingRepository は予約ストアのPostgreSQL実装
// 座席の一意性は主キー、予約番号の一意性は UNIQUE 制約で保証する
type BookingRepository struct{ db *sqlx.DB }

func NewBookingRepository(db *sqlx.DB) *BookingRepository { return &BookingRepository{db: db} }

func (r *BookingRepository) Exists(ctx context.Context, id seat.ID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM bookings WHERE seat_id = $1)`, id.String())
	if err != nil {
		return false, booking.NewStorageError("予約の存在確認", err)
	}
	return exists, nil
}

func (r *BookingRepository) Get(ctx context.Context, id seat.ID) (*booking.Booking, error) {
	query := `SELECT ` + bookingSelectColumns + ` FROM bookings WHERE seat_id = $1`
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, booking.NewStorageError("予約取得", err)
	}
	return row.toEntity()
}

func (r *BookingRepository) ExistsReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM bookings WHERE reference = $1)`, reference)
	if err != nil {
		return false, booking.NewStorageError("予約番号の存在確認", err)
	}
	return exists, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	query := `INSERT INTO bookings (seat_id, reference, first_name, last_name, passport_id, meal, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		b.Seat.String(), b.Reference, b.FirstName, b.LastName, b.PassportID, mealValue(b.Meal), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.Constraint {
			case constraintSeat:
				return booking.ErrDuplicateSeat
			case constraintReference:
				return booking.ErrDuplicateReference
			}
		}
		return booking.NewStorageError("予約作成", err)
	}
	return nil
}

func (r *BookingRepository) UpdateMeal(ctx context.Context, id seat.ID, meal booking.Meal) error {
	result, err := r.db.ExecContext(ctx, `UPDATE bookings SET meal = $1, updated_at = NOW() WHERE seat_id = $2`, mealValue(meal), id.String())
	if err != nil {
		return booking.NewStorageError("機内食更新", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// Delete は姓が一致する予約を削除する
// 削除件数が0の場合のみ、予約の有無を確認してエラーを区別する
func (r *BookingRepository) Delete(ctx context.Context, id seat.ID, lastName string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE seat_id = $1 AND last_name = $2`,
		id.String(), booking.NormalizeName(lastName))
	if err != nil {
		return booking.NewStorageError("予約削除", err)
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		return nil
	}
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return booking.ErrNoMatch
	}
	return booking.ErrNotFound
}

func (r *BookingRepository) List(ctx context.Context) ([]*booking.Booking, error) {
	return r.selectBookings(ctx, `SELECT `+bookingSelectColumns+` FROM bookings`)
}

func (r *BookingRepository) ListByLastName(ctx context.Context, lastName string) ([]*booking.Booking, error) {
	return r.selectBookings(ctx, `SELECT `+bookingSelectColumns+` FROM bookings WHERE last_name = $1`,
		booking.NormalizeName(lastName))
}

func (r *BookingRepository) Ping(ctx context.Context) error {
	if err := Ping(ctx, r.db); err != nil {
		return booking.NewStorageError("疎通確認", err)
	}
	return nil
}

// selectBookings は行・列順に並べた予約一覧を返す
// seat_id の文字列順は行番号順にならないため、並べ替えはアプリ側で行う
func (r *BookingRepository) selectBookings(ctx context.Context, query string, args ...interface{}) ([]*booking.Booking, error) {
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, booking.NewStorageError("予約一覧取得", err)
	}
	result := make([]*booking.Booking, 0, len(rows))
	for i := range rows {
		b, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seat.Less(result[j].Seat) })
	return result, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
