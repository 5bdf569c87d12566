package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RequestLogger はリクエスト単位の構造化ログを出す。
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			path := c.Request().URL.Path
			method := c.Request().Method

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status

			entry := log.Info()
			if status >= 500 {
				entry = log.Error()
			} else if status >= 400 {
				entry = log.Warn()
			}

			entry.
				Int("status", status).
				Dur("latency", latency).
				Str("client_ip", c.RealIP()).
				Str("method", method).
				Str("path", path).
				Str("request_id", c.Request().Header.Get("X-Request-ID")).
				Msg("request")

			return err
		}
	}
}
