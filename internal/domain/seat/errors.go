package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrInvalidFormat     = errors.New("座席コードの形式が正しくありません（例: 1A, 80F）")
	ErrCannotBookStorage = errors.New("倉庫区画の座席は予約できません")
)
