package booking

import (
	"errors"
	"fmt"
)

// Booking ドメインのエラー定義
var (
	ErrAlreadyBooked            = errors.New("座席は既に予約されています")
	ErrSeatNotReserved          = errors.New("座席は予約されていません。先に予約してください")
	ErrNoMatchingBooking        = errors.New("該当する予約が見つかりません")
	ErrInvalidMealChoice        = errors.New("機内食の選択が正しくありません（1〜4を選択してください）")
	ErrPassengerDetailsRequired = errors.New("名・姓・パスポート番号は必須です")
	ErrInvalidReference         = errors.New("予約番号の形式が正しくありません")
	ErrStorageUnavailable       = errors.New("予約ストアを利用できません")

	// 以下はストア実装が返すエラー（サービス層で利用者向けのエラーに変換する）
	ErrNotFound           = errors.New("予約が見つかりません")
	ErrNoMatch            = errors.New("姓が一致しません")
	ErrDuplicateSeat      = errors.New("座席の予約が重複しています")
	ErrDuplicateReference = errors.New("予約番号が重複しています")
)

// StorageError はストアのバックエンド障害を表す
// errors.Is(err, ErrStorageUnavailable) で判定できる
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError は StorageError を作成する
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageUnavailable.Error(), e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}
