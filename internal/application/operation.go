package application

// Operation は予約サービスが提供する操作の列挙
// 値はコンソールメニューの番号と一致する
type Operation int

const (
	OpCheckAvailability Operation = iota + 1
	OpBookSeat
	OpFreeSeat
	OpShowStatus
	OpSelectMeal
)

// Operations は全操作をメニュー順で返す
func Operations() []Operation {
	return []Operation{OpCheckAvailability, OpBookSeat, OpFreeSeat, OpShowStatus, OpSelectMeal}
}

// IsValid は定義済みの操作かを返す
func (o Operation) IsValid() bool {
	return o >= OpCheckAvailability && o <= OpSelectMeal
}

// String はメトリクスのラベルに使う名前を返す
func (o Operation) String() string {
	switch o {
	case OpCheckAvailability:
		return "check"
	case OpBookSeat:
		return "book"
	case OpFreeSeat:
		return "free"
	case OpShowStatus:
		return "status"
	case OpSelectMeal:
		return "meal"
	}
	return "unknown"
}

// Title はメニュー表示用の名前を返す
func (o Operation) Title() string {
	switch o {
	case OpCheckAvailability:
		return "Check seat availability"
	case OpBookSeat:
		return "Book seat"
	case OpFreeSeat:
		return "Free seat"
	case OpShowStatus:
		return "Show Booking Status"
	case OpSelectMeal:
		return "Meal Selection"
	}
	return ""
}
