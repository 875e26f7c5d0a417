package boardingpass

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/loulwahalabdely/FC723-Project1/internal/config"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
)

const qrSize = 256

// Payload はQRコードに埋め込む文字列を返す
// 形式: {便名}|{座席}|{予約番号}|{姓}
func Payload(b *booking.Booking, flight config.FlightConfig) string {
	return strings.Join([]string{flight.Number, b.Seat.String(), b.Reference, b.LastName}, "|")
}

// Generate は予約1件分の搭乗券PDFを生成する
func Generate(b *booking.Booking, flight config.FlightConfig) ([]byte, error) {
	qrBytes, err := qrcode.Encode(Payload(b, flight), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("QRコード生成に失敗: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// ヘッダー
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, strings.ToUpper(flight.Carrier), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "BOARDING PASS", "", 1, "L", false, 0, "")

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(12, pdf.GetY()+2, 198, pdf.GetY()+2)
	pdf.Ln(6)

	// 予約情報
	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(12, yStart, 120, 70, "F")
	pdf.SetXY(16, yStart+4)

	drawField(pdf, "PASSENGER", b.FullName())
	drawField(pdf, "FLIGHT", flight.Number)
	drawField(pdf, "SEAT", b.Seat.String())
	drawField(pdf, "BOOKING REFERENCE", b.Reference)
	drawField(pdf, "MEAL", b.Meal.Label())

	// QR
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrBytes))
	pdf.ImageOptions("qr", 142, yStart, 55, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 76)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued %s", b.CreatedAt.UTC().Format("02 Jan 2006 15:04 MST")), "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("搭乗券PDF生成に失敗: %w", err)
	}
	return buf.Bytes(), nil
}

func drawField(pdf *gofpdf.Fpdf, label, value string) {
	x := pdf.GetX()
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, label, "", 2, "L", false, 0, "")
	pdf.SetX(x)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, value, "", 2, "L", false, 0, "")
	pdf.SetX(x)
	pdf.Ln(1)
	pdf.SetX(x)
}
