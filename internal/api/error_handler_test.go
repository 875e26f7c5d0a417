package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loulwahalabdely/FC723-Project1/internal/application"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/booking"
	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"座席コード不正", seat.ErrInvalidFormat, http.StatusBadRequest},
		{"乗客情報不足", booking.ErrPassengerDetailsRequired, http.StatusBadRequest},
		{"機内食の選択不正", booking.ErrInvalidMealChoice, http.StatusBadRequest},
		{"物置は予約不可", seat.ErrCannotBookStorage, http.StatusUnprocessableEntity},
		{"予約済み", booking.ErrAlreadyBooked, http.StatusConflict},
		{"未予約", booking.ErrSeatNotReserved, http.StatusConflict},
		{"処理中", application.ErrSeatBusy, http.StatusConflict},
		{"該当予約なし", booking.ErrNoMatchingBooking, http.StatusNotFound},
		{"ストア障害", booking.NewStorageError("get", errors.New("timeout")), http.StatusServiceUnavailable},
		{"ラップされたエラー", fmt.Errorf("wrap: %w", booking.ErrAlreadyBooked), http.StatusConflict},
		{"その他", errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestNewHTTPError_HidesInternalDetails(t *testing.T) {
	he := NewHTTPError(booking.NewStorageError("get", errors.New("dial tcp 10.0.0.1:5432")))
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
	assert.Equal(t, booking.ErrStorageUnavailable.Error(), he.Message)
	assert.Error(t, he.Internal)

	he = NewHTTPError(booking.ErrAlreadyBooked)
	assert.Equal(t, booking.ErrAlreadyBooked.Error(), he.Message)
}

func TestCustomHTTPErrorHandler(t *testing.T) {
	e := echo.New()

	t.Run("ドメインエラーをJSONで返す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		CustomHTTPErrorHandler(seat.ErrCannotBookStorage, c)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, seat.ErrCannotBookStorage.Error(), resp.Error)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("echo.HTTPErrorはそのまま返す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		CustomHTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound), c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), http.StatusText(http.StatusNotFound))
	})

	t.Run("500は詳細を隠す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		CustomHTTPErrorHandler(errors.New("secret detail"), c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret detail")
	})
}

func TestValidator_SeatCode(t *testing.T) {
	type request struct {
		Seat string `validate:"required,seatcode"`
	}
	v := NewValidator()

	assert.NoError(t, v.Validate(&request{Seat: "15F"}))
	assert.NoError(t, v.Validate(&request{Seat: " 1a "}))
	assert.Error(t, v.Validate(&request{Seat: "81A"}))
	assert.Error(t, v.Validate(&request{Seat: "1G"}))
	assert.Error(t, v.Validate(&request{Seat: ""}))
}
