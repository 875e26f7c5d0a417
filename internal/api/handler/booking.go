package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loulwahalabdely/FC723-Project1/internal/api"
	"github.com/loulwahalabdely/FC723-Project1/internal/application"
	"github.com/loulwahalabdely/FC723-Project1/internal/config"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/boardingpass"
)

type BookingHandler struct {
	service BookingServiceInterface
	flight  config.FlightConfig
}

func NewBookingHandler(s BookingServiceInterface, flight config.FlightConfig) *BookingHandler {
	return &BookingHandler{service: s, flight: flight}
}

type CreateBookingRequest struct {
	Seat       string `json:"seat" validate:"required,seatcode" example:"15F"`
	FirstName  string `json:"first_name" validate:"required,max=100" example:"John"`
	LastName   string `json:"last_name" validate:"required,max=100" example:"Doe"`
	PassportID string `json:"passport_id" validate:"required,max=50" example:"X1234567"`
}

type ReleaseBookingRequest struct {
	LastName string `json:"last_name" example:"Doe"`
}

type SelectMealRequest struct {
	Choice string `json:"choice" validate:"required" example:"3"`
}

// BookingResponse は旅券番号を含まない
type BookingResponse struct {
	Reference string    `json:"reference" example:"K7Q2M9ZA"`
	Seat      string    `json:"seat" example:"15F"`
	FirstName string    `json:"first_name" example:"JOHN"`
	LastName  string    `json:"last_name" example:"DOE"`
	Meal      string    `json:"meal,omitempty" example:"vegetarian"`
	MealLabel string    `json:"meal_label" example:"Vegetarian Meal"`
	CreatedAt time.Time `json:"created_at"`
}

type ReleaseResponse struct {
	Seat    string `json:"seat" example:"15F"`
	Message string `json:"message"`
}

type MealResponse struct {
	Seat      string `json:"seat" example:"15F"`
	Meal      string `json:"meal,omitempty" example:"vegetarian"`
	MealLabel string `json:"meal_label" example:"Vegetarian Meal"`
	Cancelled bool   `json:"cancelled"`
}

type StatusResponse struct {
	LastName          string            `json:"last_name,omitempty"`
	Bookings          []BookingResponse `json:"bookings"`
	NoBookingsForName bool              `json:"no_bookings_for_name"`
	SeatMap           string            `json:"seat_map"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		Reference: b.Reference, Seat: b.Seat.String(),
		FirstName: b.FirstName, LastName: b.LastName,
		Meal: string(b.Meal), MealLabel: b.Meal.Label(),
		CreatedAt: b.CreatedAt,
	}
}

// Create godoc
// @Summary 座席を予約
// @Description 座席を予約し、8桁の予約番号を発行します
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "座席が既に予約済み"
// @Failure 422 {object} api.ErrorResponse "物置の座席"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.BookSeat(c.Request().Context(), req.Seat, application.PassengerInput{
		FirstName: req.FirstName, LastName: req.LastName, PassportID: req.PassportID,
	})
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// Get godoc
// @Summary 予約を取得
// @Description 座席と姓が一致する予約を返します
// @Tags bookings
// @Produce json
// @Param seat path string true "座席コード"
// @Param last_name query string true "姓"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{seat} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("seat"), c.QueryParam("last_name"))
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Release godoc
// @Summary 予約を解放
// @Description 姓が一致する場合のみ予約を解放し、機内食の選択も削除します
// @Tags bookings
// @Accept json
// @Produce json
// @Param seat path string true "座席コード"
// @Param request body ReleaseBookingRequest true "姓"
// @Success 200 {object} ReleaseResponse
// @Failure 404 {object} api.ErrorResponse "該当する予約なし"
// @Router /bookings/{seat}/release [post]
func (h *BookingHandler) Release(c echo.Context) error {
	var req ReleaseBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	id, err := h.service.FreeSeat(c.Request().Context(), c.Param("seat"), req.LastName)
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, ReleaseResponse{
		Seat:    id.String(),
		Message: fmt.Sprintf("Released seat %s and cleared meal preference.", id),
	})
}

// SelectMeal godoc
// @Summary 機内食を選択
// @Description 1〜4 または機内食名で選択します。X で取り消し（変更なし）
// @Tags bookings
// @Accept json
// @Produce json
// @Param seat path string true "座席コード"
// @Param request body SelectMealRequest true "選択"
// @Success 200 {object} MealResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "未予約の座席"
// @Router /bookings/{seat}/meal [put]
func (h *BookingHandler) SelectMeal(c echo.Context) error {
	var req SelectMealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	sel, err := h.service.SelectMeal(c.Request().Context(), c.Param("seat"), req.Choice)
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, MealResponse{
		Seat:      sel.Seat.String(),
		Meal:      string(sel.Meal),
		MealLabel: sel.Meal.Label(),
		Cancelled: sel.Cancelled,
	})
}

// Status godoc
// @Summary 予約状況
// @Description 姓で絞り込んだ予約一覧と座席表を返します
// @Tags bookings
// @Produce json
// @Param last_name query string false "姓"
// @Success 200 {object} StatusResponse
// @Router /status [get]
func (h *BookingHandler) Status(c echo.Context) error {
	report, err := h.service.ShowStatus(c.Request().Context(), c.QueryParam("last_name"))
	if err != nil {
		return api.NewHTTPError(err)
	}
	resp := StatusResponse{
		LastName:          report.LastName,
		Bookings:          make([]BookingResponse, len(report.Bookings)),
		NoBookingsForName: report.NoBookingsForName,
		SeatMap:           report.SeatMap,
	}
	for i, b := range report.Bookings {
		resp.Bookings[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// BoardingPass godoc
// @Summary 搭乗券PDF
// @Description 予約番号のQRコード付き搭乗券を返します
// @Tags bookings
// @Produce application/pdf
// @Param seat path string true "座席コード"
// @Param last_name query string true "姓"
// @Success 200 {file} binary
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{seat}/boarding-pass [get]
func (h *BookingHandler) BoardingPass(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("seat"), c.QueryParam("last_name"))
	if err != nil {
		return api.NewHTTPError(err)
	}
	pdf, err := boardingpass.Generate(b, h.flight)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "搭乗券の生成に失敗しました").SetInternal(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename="boarding-pass-%s.pdf"`, b.Reference))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
