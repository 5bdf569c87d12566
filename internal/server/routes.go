package server

import (
	"github.com/j99way99/my-inv-app/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg)
	h.Item.RegisterRoutes(e, cfg)
	h.Event.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
}
