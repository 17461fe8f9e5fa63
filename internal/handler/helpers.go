package handler

import (
	"errors"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// contextからuser_idを取り出す（auth middlewareがセット）
func getUserID(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	id, ok := v.(int64)
	return id, ok && id > 0
}

func writeError(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// usecaseのsentinel errorをHTTPステータスに変換
func writeUsecaseError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return writeError(c, http.StatusBadRequest, "validation error")
	case errors.Is(err, usecase.ErrStockExceeded):
		return writeError(c, http.StatusBadRequest, "stock exceeded")
	case errors.Is(err, usecase.ErrUnauthorized):
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, usecase.ErrForbidden):
		return writeError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, usecase.ErrNotFound):
		return writeError(c, http.StatusNotFound, "not found")
	case errors.Is(err, usecase.ErrConflict):
		return writeError(c, http.StatusConflict, "conflict")
	default:
		return writeError(c, http.StatusInternalServerError, "internal error")
	}
}
