package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/replenishment-planner/internal/application/planning"
)

// ExportHandler descargas XLSX y PDF (protegido).
type ExportHandler struct {
	uc *planning.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *planning.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ProductsXLSX godoc
// @Summary      Exportar SKUs con métricas (XLSX)
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/export/products.xlsx [get]
func (h *ExportHandler) ProductsXLSX(c *fiber.Ctx) error {
	return h.send(c, h.uc.ExportProductsXLSX)
}

// PlanXLSX godoc
// @Summary      Exportar plan de pedido (XLSX)
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/export/plan.xlsx [get]
func (h *ExportHandler) PlanXLSX(c *fiber.Ctx) error {
	return h.send(c, h.uc.ExportPlanXLSX)
}

// PlanPDF godoc
// @Summary      Exportar plan de pedido (PDF)
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/export/plan.pdf [get]
func (h *ExportHandler) PlanPDF(c *fiber.Ctx) error {
	return h.send(c, h.uc.ExportPlanPDF)
}

func (h *ExportHandler) send(c *fiber.Ctx, export func(ctx context.Context, ownerID string) (*planning.Export, error)) error {
	out, err := export(c.UserContext(), GetOwnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	return c.Send(out.Content)
}
