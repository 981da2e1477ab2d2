package planning

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/domain"
	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/domain/inventory"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
)

// PlanningUseCase calcula métricas de reposición a partir de los parámetros y ventas guardados.
// Las métricas nunca se persisten: cada consulta las recalcula.
type PlanningUseCase struct {
	tx  TxRunner
	now func() time.Time
}

// NewPlanningUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewPlanningUseCase(tx TxRunner, now func() time.Time) *PlanningUseCase {
	if now == nil {
		now = time.Now
	}
	return &PlanningUseCase{tx: tx, now: now}
}

// ComputeForSKU devuelve el detalle del SKU: ventana de 3 meses, ventas encontradas, métricas
// y tendencia de 6 meses. Producto y ventas se leen en la misma instantánea.
// Devuelve domain.ErrNotFound si el SKU no existe para el propietario.
func (uc *PlanningUseCase) ComputeForSKU(ctx context.Context, ownerID, sku string) (*dto.ProductPlanDTO, error) {
	sku = strings.TrimSpace(sku)
	today := uc.now()
	window := inventory.LastNCalendarMonths(inventory.ComputationWindowMonths, today)
	trend := inventory.LastNCalendarMonths(inventory.TrendWindowMonths, today)

	var product *entity.Product
	var units repository.MonthlyUnits
	err := uc.tx.RunReadOnly(ctx, func(products repository.ProductRepository, sales repository.MonthlySalesRepository) error {
		p, err := products.GetByOwnerAndSKU(ctx, ownerID, sku)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		// la tendencia contiene la ventana de cálculo: una sola lectura
		u, err := sales.GetUnits(ctx, ownerID, sku, trend)
		if err != nil {
			return err
		}
		product, units = p, u
		return nil
	})
	if err != nil {
		return nil, err
	}

	observed := observedUnits(window, units)
	return &dto.ProductPlanDTO{
		Product:       toProductResponse(product),
		WindowMonths:  monthLabels(window),
		ObservedUnits: observed,
		Metrics:       toMetricsDTO(computeFor(product, observed)),
		Trend:         trendPoints(trend, units),
	}, nil
}

// ListProducts devuelve todos los SKUs del propietario (última modificación primero) con sus métricas.
func (uc *PlanningUseCase) ListProducts(ctx context.Context, ownerID string) (*dto.ProductListResponse, error) {
	window := inventory.LastNCalendarMonths(inventory.ComputationWindowMonths, uc.now())
	items, err := uc.summaries(ctx, ownerID, window)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items:        items,
		Total:        len(items),
		WindowMonths: monthLabels(window),
	}, nil
}

// OrderPlan devuelve solo los SKUs cuya cantidad a pedir redondeada es mayor que cero.
func (uc *PlanningUseCase) OrderPlan(ctx context.Context, ownerID string) (*dto.OrderPlanResponse, error) {
	window := inventory.LastNCalendarMonths(inventory.ComputationWindowMonths, uc.now())
	all, err := uc.summaries(ctx, ownerID, window)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductSummaryDTO, 0, len(all))
	for _, s := range all {
		if s.Metrics.OrderUnits > 0 {
			items = append(items, s)
		}
	}
	return &dto.OrderPlanResponse{
		Items:              items,
		Total:              len(items),
		HorizonDays:        int(inventory.PlanningHorizonDays),
		OrderQuantityLabel: OrderQuantityLabel,
		WindowMonths:       monthLabels(window),
	}, nil
}

// Calculate evalúa el motor sobre entradas explícitas, sin tocar la base de datos.
func (uc *PlanningUseCase) Calculate(in dto.CalculateRequest) (*dto.MetricsDTO, error) {
	if !validQuantities(in.LeadTimeDays, in.FBAStock, in.InboundStock) || !validZValue(in.ZValue) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.MonthlyUnits) > inventory.ComputationWindowMonths {
		return nil, domain.ErrInvalidInput
	}
	for _, u := range in.MonthlyUnits {
		if u < 0 || u > maxQuantity {
			return nil, domain.ErrInvalidInput
		}
	}
	m := inventory.ComputeReorderMetrics(
		in.LeadTimeDays,
		in.ZValue.InexactFloat64(),
		in.MonthlyUnits,
		in.FBAStock,
		in.InboundStock,
	)
	out := toMetricsDTO(m)
	return &out, nil
}

func (uc *PlanningUseCase) summaries(ctx context.Context, ownerID string, window []inventory.YearMonth) ([]dto.ProductSummaryDTO, error) {
	var list []*entity.Product
	var unitsBySKU map[string]repository.MonthlyUnits
	err := uc.tx.RunReadOnly(ctx, func(products repository.ProductRepository, sales repository.MonthlySalesRepository) error {
		l, err := products.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		u, err := sales.GetUnitsByOwner(ctx, ownerID, window)
		if err != nil {
			return err
		}
		list, unitsBySKU = l, u
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductSummaryDTO, 0, len(list))
	for _, p := range list {
		observed := observedUnits(window, unitsBySKU[p.SKU])
		items = append(items, dto.ProductSummaryDTO{
			Product: toProductResponse(p),
			Metrics: toMetricsDTO(computeFor(p, observed)),
		})
	}
	return items, nil
}
