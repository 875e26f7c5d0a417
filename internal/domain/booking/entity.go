package booking

import (
	"strings"
	"time"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// Booking は座席の予約エンティティを表す
// 座席 ID をキーとし、1座席につき有効な予約は最大1件
type Booking struct {
	Reference  string
	Seat       seat.ID
	FirstName  string
	LastName   string
	PassportID string
	Meal       Meal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Passenger は予約時に入力される乗客情報
type Passenger struct {
	FirstName  string
	LastName   string
	PassportID string
}

// NewBooking は新しい予約を作成する（機内食は未選択）
func NewBooking(id seat.ID, p Passenger, reference string) *Booking {
	now := time.Now()
	return &Booking{
		Reference:  reference,
		Seat:       id,
		FirstName:  NormalizeName(p.FirstName),
		LastName:   NormalizeName(p.LastName),
		PassportID: strings.TrimSpace(p.PassportID),
		Meal:       MealNone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NormalizeName は氏名を比較用の正規形（前後空白除去・大文字）にする
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// MatchesLastName は姓が一致するかを大文字小文字を区別せずに判定する
func (b *Booking) MatchesLastName(lastName string) bool {
	return b.LastName == NormalizeName(lastName)
}

// SelectMeal は機内食を設定する（再選択時は上書き）
func (b *Booking) SelectMeal(m Meal) error {
	if !m.IsSelectable() {
		return ErrInvalidMealChoice
	}
	b.Meal = m
	b.UpdatedAt = time.Now()
	return nil
}

// FullName は "名 姓" 形式の氏名を返す
func (b *Booking) FullName() string {
	return b.FirstName + " " + b.LastName
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.FirstName == "" || b.LastName == "" || b.PassportID == "" {
		return ErrPassengerDetailsRequired
	}
	if !IsValidReference(b.Reference) {
		return ErrInvalidReference
	}
	if b.Seat.IsZero() {
		return seat.ErrInvalidFormat
	}
	return nil
}

// Clone は予約のコピーを返す（ストア外への受け渡し用）
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}
