package handler

import (
	"net/http"
	"time"

	"github.com/j99way99/my-inv-app/internal/config"
	"github.com/j99way99/my-inv-app/internal/middleware"
	"github.com/j99way99/my-inv-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /apply-events の催事API
type EventHandler struct {
	uc *usecase.EventUsecase
}

// DI
func NewEventHandler(uc *usecase.EventUsecase) *EventHandler {
	return &EventHandler{uc: uc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/apply-events")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type EventItemRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"min=1"`
}

type EventSaveRequest struct {
	EventName  string             `json:"event_name" validate:"required"`
	EventDate  time.Time          `json:"event_date" validate:"required"`
	EventItems []EventItemRequest `json:"event_items" validate:"dive"`
}

func (h *EventHandler) list(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListEvents(c.Request().Context(), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EventHandler) create(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req EventSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	out, err := h.uc.CreateEvent(c.Request().Context(), ownerID, toSaveEventInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *EventHandler) update(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req EventSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeValidationError(c, err)
	}

	out, err := h.uc.UpdateEvent(c.Request().Context(), ownerID, c.Param("id"), toSaveEventInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EventHandler) remove(c echo.Context) error {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteEvent(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "event deleted"})
}

func toSaveEventInput(req EventSaveRequest) usecase.SaveEventInput {
	items := make([]usecase.EventItemInput, 0, len(req.EventItems))
	for _, it := range req.EventItems {
		items = append(items, usecase.EventItemInput{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
		})
	}
	return usecase.SaveEventInput{
		EventName: req.EventName,
		EventDate: req.EventDate,
		Items:     items,
	}
}
