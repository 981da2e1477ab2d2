package planning

import (
	"context"
	"time"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// RunReadOnly garantiza que producto y ventas se lean de la misma instantánea.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.MonthlySalesRepository,
	) error) error
	RunReadOnly(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.MonthlySalesRepository,
	) error) error
}

// SpreadsheetExporter genera libros XLSX con las filas ya calculadas.
type SpreadsheetExporter interface {
	ProductsWorkbook(rows []dto.ProductSummaryDTO) ([]byte, error)
	PlanWorkbook(rows []dto.ProductSummaryDTO) ([]byte, error)
}

// PlanPDFGenerator genera la versión imprimible del plan de pedido.
type PlanPDFGenerator interface {
	GeneratePlanPDF(ctx context.Context, plan *dto.OrderPlanResponse, generatedAt time.Time) ([]byte, error)
}
