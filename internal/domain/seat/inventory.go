package seat

// Class は座席の区分を表す
type Class string

const (
	ClassBookable Class = "bookable"
	ClassStorage  Class = "storage"
	// ClassAisle は座席表の描画専用（通路 "X"）で、Parse の結果にはならない
	ClassAisle Class = "aisle"
)

// Inventory は機体の座席配置（静的情報）を表す
// 生成後は変更されないため、複数のゴルーチンから共有してよい
type Inventory struct {
	storage Set
}

// defaultStorageSeats は手荷物置き場として予約不可の座席
var defaultStorageSeats = []string{"77D", "77E", "77F", "78D", "78E", "78F"}

// DefaultInventory は運航機材の座席配置を返す
func DefaultInventory() *Inventory {
	ids := make([]ID, 0, len(defaultStorageSeats))
	for _, code := range defaultStorageSeats {
		ids = append(ids, MustParse(code))
	}
	return NewInventory(ids...)
}

// NewInventory は指定した座席を倉庫区画とする Inventory を作成する
func NewInventory(storage ...ID) *Inventory {
	return &Inventory{storage: NewSet(storage...)}
}

// Classify は座席の区分を返す
func (inv *Inventory) Classify(id ID) Class {
	if inv.storage.Contains(id) {
		return ClassStorage
	}
	return ClassBookable
}

// IsStorage は座席が倉庫区画かを返す
func (inv *Inventory) IsStorage(id ID) bool {
	return inv.Classify(id) == ClassStorage
}

// StorageSeats は倉庫区画の座席を行・列順で返す
func (inv *Inventory) StorageSeats() []ID {
	ids := make([]ID, 0, len(inv.storage))
	for row := MinRow; row <= MaxRow; row++ {
		for _, col := range Columns {
			id := ID{Row: row, Column: col}
			if inv.storage.Contains(id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// BookableCount は予約可能な座席の総数を返す
func (inv *Inventory) BookableCount() int {
	return (MaxRow-MinRow+1)*len(Columns) - len(inv.storage)
}
