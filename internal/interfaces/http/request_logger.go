package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/replenishment-planner/pkg/logger"
)

// RequestLogger registra método, ruta, estado y latencia de cada petición.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		path := c.Path()
		if q := string(c.Request().URI().QueryString()); q != "" {
			path += "?" + q
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", path).
			Str("ip", c.IP()).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Str("owner_id", GetOwnerID(c)).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request processed")
		return err
	}
}
