package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// Guardが返すエラー種別。usecase側でHTTPErrorに変換する
var (
	// 入力が不正（形式・範囲）
	ErrInvalidInput = errors.New("invalid input")

	// 商品名が別の商品で使用済み
	ErrProductNameTaken = errors.New("product name already used")
)

// Guardのエラーをステータス付きに変換
func guardError(err error) error {
	switch {
	case errors.Is(err, ErrProductNameTaken):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return NewHTTPError(http.StatusInternalServerError, "db error")
}
