package handler

import (
	"net/http"

	"github.com/j99way99/my-inv-app/internal/config"
	"github.com/j99way99/my-inv-app/internal/middleware"
	"github.com/j99way99/my-inv-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /items の商品API
type ItemHandler struct {
	uc *usecase.ItemUsecase
}

// DI
func NewItemHandler(uc *usecase.ItemUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/items")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type ItemSaveRequest struct {
	Name          string `json:"name" validate:"required"`
	Category      string `json:"category" validate:"required"`
	Description   string `json:"description"`
	StockQuantity int64  `json:"stock_quantity" validate:"min=0"`
	Price         int64  `json:"price" validate:"min=0"`
}

func (h *ItemHandler) list(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListItems(c.Request().Context(), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) create(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ItemSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	out, err := h.uc.CreateItem(c.Request().Context(), ownerID, usecase.CreateItemInput{
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		Price:         req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ItemHandler) update(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ItemSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), ownerID, c.Param("id"), usecase.UpdateItemInput{
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		Price:         req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) remove(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteItem(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item deleted"})
}
