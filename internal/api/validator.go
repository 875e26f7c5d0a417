package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

// CustomValidator はEcho用のカスタムバリデーター
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator は新しいバリデーターを作成する
// 座席コード用の独自タグ seatcode を登録する
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("seatcode", func(fl validator.FieldLevel) bool {
		_, err := seat.Parse(fl.Field().String())
		return err == nil
	})
	return &CustomValidator{validator: v}
}

// Validate はリクエストのバリデーションを実行する
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
