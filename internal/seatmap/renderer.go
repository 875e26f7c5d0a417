// Package seatmap は予約状況から機内の座席表テキストを生成する
package seatmap

import (
	"fmt"
	"strings"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

const (
	Title  = " Flight Seat Map "
	Legend = "Legend: [Seat#] Available, [R] Reserved, [S] Storage, [X] Aisle"
	Footer = "Front of Aircraft"

	MarkReserved = "R"
	MarkStorage  = "S"
	MarkAisle    = "X"

	cellWidth   = 4
	footerWidth = 38
)

// aisleAfter の列の後ろに通路を描画する
const aisleAfter = seat.ColumnC

// Render は座席表を生成する
// 各セルは 通路 > 倉庫区画 > 予約済み > 空席（座席番号） の優先順で表示する
func Render(booked seat.Set, inv *seat.Inventory) string {
	var sb strings.Builder
	sb.WriteString("\n" + Title + "\n")
	sb.WriteString(Legend + "\n\n")

	for row := seat.MinRow; row <= seat.MaxRow; row++ {
		left, right := Borders(row)
		sb.WriteString(left)
		for _, col := range seat.Columns {
			sb.WriteString(cell(CellMark(seat.ID{Row: row, Column: col}, booked, inv)))
			if col == aisleAfter {
				sb.WriteString(cell(MarkAisle))
			}
		}
		sb.WriteString(right)
		sb.WriteString("\n")
	}

	sb.WriteString(center("\n"+Footer, footerWidth))
	sb.WriteString("\n")
	return sb.String()
}

// CellMark は1座席分の表示記号を返す
func CellMark(id seat.ID, booked seat.Set, inv *seat.Inventory) string {
	switch {
	case inv.Classify(id) == seat.ClassStorage:
		return MarkStorage
	case booked.Contains(id):
		return MarkReserved
	default:
		return id.String()
	}
}

// Borders は行番号に応じた機体外形の左右の枠を返す
// 前方（15列未満）・中央（15〜65列）・後方（66列以降）で形が変わる
func Borders(row int) (left, right string) {
	switch {
	case row < 15:
		return "◢ ", " ◣"
	case row <= 65:
		return "‖ ", " ‖"
	default:
		return "◥ ", " ◤"
	}
}

func cell(s string) string {
	return fmt.Sprintf("%-*s", cellWidth, s)
}

// center は文字列を幅 width の中央に配置する（余白が奇数の場合は右側を多くする）
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	pad := width - n
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
