package booking

import (
	"context"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// Repository は予約ストアのインターフェース
// 更新系の各メソッドは単一のアトミックな操作として実装すること
type Repository interface {
	// Exists は座席に有効な予約があるかを返す
	Exists(ctx context.Context, id seat.ID) (bool, error)

	// Get は座席の予約を取得する（存在しない場合は ErrNotFound）
	Get(ctx context.Context, id seat.ID) (*Booking, error)

	// ExistsReference は予約番号が使用中かを返す
	ExistsReference(ctx context.Context, reference string) (bool, error)

	// Insert は予約を登録する（ErrDuplicateSeat / ErrDuplicateReference）
	Insert(ctx context.Context, b *Booking) error

	// UpdateMeal は機内食を更新する（予約がない場合は ErrNotFound）
	UpdateMeal(ctx context.Context, id seat.ID, meal Meal) error

	// Delete は姓が一致する場合のみ予約を削除する（ErrNotFound / ErrNoMatch）
	Delete(ctx context.Context, id seat.ID, lastName string) error

	// List は全予約を行・列順で取得する
	List(ctx context.Context) ([]*Booking, error)

	// ListByLastName は姓が一致する予約を行・列順で取得する
	ListByLastName(ctx context.Context, lastName string) ([]*Booking, error)

	// Ping はバックエンドの疎通を確認する
	Ping(ctx context.Context) error
}
