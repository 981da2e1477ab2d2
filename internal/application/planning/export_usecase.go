package planning

import (
	"context"
	"fmt"
	"time"
)

// Export archivo listo para descargar.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// ExportUseCase genera descargas (XLSX y PDF) sobre las mismas métricas del listado y del plan.
type ExportUseCase struct {
	planning *PlanningUseCase
	sheets   SpreadsheetExporter
	pdf      PlanPDFGenerator
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewExportUseCase(planning *PlanningUseCase, sheets SpreadsheetExporter, pdf PlanPDFGenerator, now func() time.Time) *ExportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ExportUseCase{planning: planning, sheets: sheets, pdf: pdf, now: now}
}

// ExportProductsXLSX exporta todos los SKUs con sus métricas.
func (uc *ExportUseCase) ExportProductsXLSX(ctx context.Context, ownerID string) (*Export, error) {
	list, err := uc.planning.ListProducts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	content, err := uc.sheets.ProductsWorkbook(list.Items)
	if err != nil {
		return nil, fmt.Errorf("products workbook: %w", err)
	}
	return &Export{Filename: uc.filename("skus", "xlsx"), ContentType: contentTypeXLSX, Content: content}, nil
}

// ExportPlanXLSX exporta el plan de pedido (solo SKUs con pedido > 0).
func (uc *ExportUseCase) ExportPlanXLSX(ctx context.Context, ownerID string) (*Export, error) {
	plan, err := uc.planning.OrderPlan(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	content, err := uc.sheets.PlanWorkbook(plan.Items)
	if err != nil {
		return nil, fmt.Errorf("plan workbook: %w", err)
	}
	return &Export{Filename: uc.filename("plan_pedido", "xlsx"), ContentType: contentTypeXLSX, Content: content}, nil
}

// ExportPlanPDF genera la versión imprimible del plan de pedido.
func (uc *ExportUseCase) ExportPlanPDF(ctx context.Context, ownerID string) (*Export, error) {
	plan, err := uc.planning.OrderPlan(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdf.GeneratePlanPDF(ctx, plan, uc.now())
	if err != nil {
		return nil, fmt.Errorf("plan pdf: %w", err)
	}
	return &Export{Filename: uc.filename("plan_pedido", "pdf"), ContentType: contentTypePDF, Content: content}, nil
}

func (uc *ExportUseCase) filename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, uc.now().Format("20060102"), ext)
}
