package seat

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MinRow は最前列の番号
	MinRow = 1
	// MaxRow は最後列の番号
	MaxRow = 80
)

// Column は座席の列を表す（A〜F）
type Column byte

const (
	ColumnA Column = 'A'
	ColumnB Column = 'B'
	ColumnC Column = 'C'
	ColumnD Column = 'D'
	ColumnE Column = 'E'
	ColumnF Column = 'F'
)

// Columns は機内の列を左から順に並べたもの（通路は含まない）
var Columns = []Column{ColumnA, ColumnB, ColumnC, ColumnD, ColumnE, ColumnF}

func (c Column) String() string {
	return string(c)
}

// IsValid は列が A〜F のいずれかかを返す
func (c Column) IsValid() bool {
	return c >= ColumnA && c <= ColumnF
}

// ID は正規化済みの座席識別子
type ID struct {
	Row    int
	Column Column
}

var seatCodePattern = regexp.MustCompile(`^(\d{1,2})([A-F])$`)

// Parse は入力された座席コードを検証し、正規化した ID を返す
//
// 前後の空白を除去し大文字化した上で「1〜2桁の行番号 + 列記号」の形式のみ受け付ける。
// 失敗理由に関わらず ErrInvalidFormat を返す。
func Parse(raw string) (ID, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	m := seatCodePattern.FindStringSubmatch(code)
	if m == nil {
		return ID{}, ErrInvalidFormat
	}
	row, err := strconv.Atoi(m[1])
	if err != nil || row < MinRow || row > MaxRow {
		return ID{}, ErrInvalidFormat
	}
	return ID{Row: row, Column: Column(m[2][0])}, nil
}

// MustParse は Parse が失敗した場合に panic する（固定値の定義用）
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic("seat: invalid seat code " + strconv.Quote(raw))
	}
	return id
}

// String は "15F" 形式の正規表現を返す
func (id ID) String() string {
	return strconv.Itoa(id.Row) + id.Column.String()
}

// IsZero は ID が未設定かを返す
func (id ID) IsZero() bool {
	return id.Row == 0 && id.Column == 0
}

// Less は行、列の順で比較する
func (id ID) Less(other ID) bool {
	if id.Row != other.Row {
		return id.Row < other.Row
	}
	return id.Column < other.Column
}

// Set は座席 ID の集合
type Set map[ID]struct{}

// NewSet は与えられた ID から集合を作成する
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains は集合に ID が含まれるかを返す
func (s Set) Contains(id ID) bool {
	_, ok := s[id]
	return ok
}
