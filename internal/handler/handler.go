package handler

import (
	"net/http"

	"github.com/j99way99/my-inv-app/internal/middleware"
	"github.com/j99way99/my-inv-app/internal/usecase"
	"github.com/j99way99/my-inv-app/internal/validator"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// DTOのタグ検証に失敗したら400とフィールド別の理由を返す
func writeValidationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:  "validation failed",
		Fields: validator.FormatValidationErrors(err),
	})
}

// AuthJWTが入れたuser_idを取り出す
func ownerIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
