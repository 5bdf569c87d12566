package handler

import (
	"net/http"

	"github.com/j99way99/my-inv-app/internal/config"
	"github.com/j99way99/my-inv-app/internal/middleware"
	"github.com/j99way99/my-inv-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders の注文API
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("/:id", h.updateStatus)
}

type OrderItemRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"min=1"`
	Price    int64  `json:"price" validate:"min=0"`
}

type OrderCreateRequest struct {
	ApplyEventID     string             `json:"apply_event_id" validate:"required"`
	OrderItems       []OrderItemRequest `json:"order_items" validate:"required,min=1,dive"`
	TotalAmount      int64              `json:"total_amount" validate:"min=0"`
	PaymentMethod    string             `json:"payment_method" validate:"required"`
	SubPaymentMethod string             `json:"sub_payment_method"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) list(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListOrders(c.Request().Context(), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) create(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	items := make([]usecase.OrderItemInput, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		items = append(items, usecase.OrderItemInput{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), ownerID, usecase.CreateOrderInput{
		ApplyEventID:     req.ApplyEventID,
		Items:            items,
		TotalAmount:      req.TotalAmount,
		PaymentMethod:    req.PaymentMethod,
		SubPaymentMethod: req.SubPaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), ownerID, c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
