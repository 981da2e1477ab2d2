package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/pkg/jwt"
)

// LocalOwnerID key de Fiber Locals con el propietario autenticado.
const LocalOwnerID = "owner_id"

// AuthMiddleware valida el Bearer Token JWT y guarda el OwnerID en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		ownerID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalOwnerID, ownerID)
		return c.Next()
	}
}

// GetOwnerID devuelve el OwnerID del contexto (después del middleware de auth).
func GetOwnerID(c *fiber.Ctx) string {
	v := c.Locals(LocalOwnerID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
