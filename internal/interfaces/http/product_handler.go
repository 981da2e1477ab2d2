package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
)

// ProductHandler maneja SKUs y su historial de ventas (protegido).
type ProductHandler struct {
	catalog  *planning.CatalogUseCase
	planning *planning.PlanningUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(catalog *planning.CatalogUseCase, planningUC *planning.PlanningUseCase) *ProductHandler {
	return &ProductHandler{catalog: catalog, planning: planningUC}
}

// List godoc
// @Summary      Listar SKUs con métricas
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.planning.ListProducts(c.UserContext(), GetOwnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o actualizar SKU con ventas mensuales
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveProductRequest  true  "Parámetros del SKU y meses de ventas"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.catalog.SaveProductWithSales(c.UserContext(), GetOwnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de SKU: métricas, ventana de cálculo y tendencia de 6 meses
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ProductPlanDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.planning.ComputeForSKU(c.UserContext(), GetOwnerID(c), skuParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar SKU y su historial
// @Tags         products
// @Security     Bearer
// @Param        sku  path  string  true  "SKU"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), GetOwnerID(c), skuParam(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertSales godoc
// @Summary      Agregar o sobrescribir ventas mensuales de un SKU
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sku   path  string                  true  "SKU"
// @Param        body  body  dto.UpsertSalesRequest  true  "Meses de ventas"
// @Success      200   {object}  dto.ProductPlanDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{sku}/sales [put]
func (h *ProductHandler) UpsertSales(c *fiber.Ctx) error {
	var in dto.UpsertSalesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ownerID, sku := GetOwnerID(c), skuParam(c)
	if err := h.catalog.UpsertMonthlySales(c.UserContext(), ownerID, sku, in); err != nil {
		return respondError(c, err)
	}
	out, err := h.planning.ComputeForSKU(c.UserContext(), ownerID, sku)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
