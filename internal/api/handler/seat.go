package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loulwahalabdely/FC723-Project1/internal/api"
)

type SeatHandler struct {
	service BookingServiceInterface
}

func NewSeatHandler(s BookingServiceInterface) *SeatHandler {
	return &SeatHandler{service: s}
}

type AvailabilityResponse struct {
	Seat   string `json:"seat" example:"15F"`
	Status string `json:"status" example:"available"`
	Label  string `json:"label" example:"Available"`
}

// Check godoc
// @Summary 空席確認
// @Description 座席が空席・予約済み・物置のいずれかを返します
// @Tags seats
// @Produce json
// @Param seat path string true "座席コード（例: 15F）"
// @Success 200 {object} AvailabilityResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /seats/{seat} [get]
func (h *SeatHandler) Check(c echo.Context) error {
	result, err := h.service.CheckAvailability(c.Request().Context(), c.Param("seat"))
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{
		Seat:   result.Seat.String(),
		Status: string(result.Status),
		Label:  result.Status.Label(),
	})
}

// SeatMap godoc
// @Summary 座席表
// @Description 全80列の座席表をテキストで返します
// @Tags seats
// @Produce plain
// @Success 200 {string} string
// @Router /seatmap [get]
func (h *SeatHandler) SeatMap(c echo.Context) error {
	m, err := h.service.SeatMap(c.Request().Context())
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.String(http.StatusOK, m)
}
