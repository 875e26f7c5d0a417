package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/loulwahalabdely/FC723-Project1/internal/application"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
	"github.com/loulwahalabdely/FC723-Project1/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// StatusFromError は予約ドメインのエラーをHTTPステータスに変換する
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, seat.ErrInvalidFormat),
		errors.Is(err, booking.ErrPassengerDetailsRequired),
		errors.Is(err, booking.ErrInvalidMealChoice):
		return http.StatusBadRequest
	case errors.Is(err, seat.ErrCannotBookStorage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrAlreadyBooked),
		errors.Is(err, booking.ErrSeatNotReserved),
		errors.Is(err, application.ErrSeatBusy):
		return http.StatusConflict
	case errors.Is(err, booking.ErrNoMatchingBooking):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// NewHTTPError はドメインエラーを echo.HTTPError に変換する
// 5xx の場合は内部の詳細をレスポンスに含めない
func NewHTTPError(err error) *echo.HTTPError {
	code := StatusFromError(err)
	message := err.Error()
	switch code {
	case http.StatusServiceUnavailable:
		message = booking.ErrStorageUnavailable.Error()
	case http.StatusInternalServerError:
		message = "内部サーバーエラー"
	}
	return echo.NewHTTPError(code, message).SetInternal(err)
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = NewHTTPError(err)
	}
	code := he.Code
	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(code)
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(code, ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
