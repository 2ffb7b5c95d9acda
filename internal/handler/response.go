package handler

import (
	"errors"
	"net/http"

	"github.com/DipakKumarChauhan/SubStream/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 成功レスポンスのエンベロープ
type apiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// エラーレスポンスのエンベロープ（dataは常にnull）
type apiError struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors"`
}

func ok(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// usecaseのエラーをエンベロープへ変換する。
// handlerはドメインエラーを握りつぶさずここへ流すだけ。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return writeErrorJSON(c, he.Status, he.Message)
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return writeErrorJSON(c, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, usecase.ErrUnauthorized):
		return writeErrorJSON(c, http.StatusUnauthorized, "Unauthorized request")
	case errors.Is(err, usecase.ErrNotFound):
		return writeErrorJSON(c, http.StatusNotFound, "Not found")
	case errors.Is(err, usecase.ErrConflict):
		return writeErrorJSON(c, http.StatusConflict, "Conflict")
	}

	//500
	return writeErrorJSON(c, http.StatusInternalServerError, "Something went wrong")
}

func writeErrorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, apiError{
		StatusCode: status,
		Message:    message,
		Data:       nil,
		Success:    false,
		Errors:     []string{},
	})
}
