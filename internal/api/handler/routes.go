package handler

import "github.com/labstack/echo/v4"

// RegisterRoutes は予約APIのルートを登録する
func RegisterRoutes(e *echo.Echo, bookings *BookingHandler, seats *SeatHandler, health *HealthHandler) {
	e.GET("/health", health.Check)

	v1 := e.Group("/api/v1")
	v1.GET("/seats/:seat", seats.Check)
	v1.GET("/seatmap", seats.SeatMap)

	v1.POST("/bookings", bookings.Create)
	v1.GET("/bookings/:seat", bookings.Get)
	v1.POST("/bookings/:seat/release", bookings.Release)
	v1.PUT("/bookings/:seat/meal", bookings.SelectMeal)
	v1.GET("/bookings/:seat/boarding-pass", bookings.BoardingPass)
	v1.GET("/status", bookings.Status)
}
