package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
)

// PlanHandler plan de pedido y calculador sin estado (protegido).
type PlanHandler struct {
	uc *planning.PlanningUseCase
}

// NewPlanHandler construye el handler.
func NewPlanHandler(uc *planning.PlanningUseCase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// OrderPlan godoc
// @Summary      Plan de pedido: SKUs con cantidad a pedir mayor que cero
// @Tags         plan
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderPlanResponse
// @Router       /api/plan [get]
func (h *PlanHandler) OrderPlan(c *fiber.Ctx) error {
	out, err := h.uc.OrderPlan(c.UserContext(), GetOwnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calculate godoc
// @Summary      Calcular métricas de reposición sobre entradas explícitas
// @Tags         plan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateRequest  true  "Lead time, z, ventas de la ventana y stocks"
// @Success      200   {object}  dto.MetricsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishment/calculate [post]
func (h *PlanHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Calculate(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
