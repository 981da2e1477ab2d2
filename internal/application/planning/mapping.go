package planning

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/domain/inventory"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
)

// OrderQuantityLabel describe la cantidad a pedir en reportes y exportaciones.
const OrderQuantityLabel = "Unidades recomendadas a pedir para cubrir los próximos 60 días, netas del stock actual y en tránsito"

const metricDecimals = 4

// maxQuantity es el máximo de las columnas INTEGER de stock, lead time y ventas.
const maxQuantity = math.MaxInt32

func computeFor(p *entity.Product, observed []int) inventory.ReorderMetrics {
	return inventory.ComputeReorderMetrics(
		p.LeadTimeDays,
		p.ZValue.InexactFloat64(),
		observed,
		p.FBAStock,
		p.InboundStock,
	)
}

// observedUnits toma solo los meses de window con registro, en el orden de window.
func observedUnits(window []inventory.YearMonth, units repository.MonthlyUnits) []int {
	out := make([]int, 0, len(window))
	for _, ym := range window {
		if u, ok := units[ym]; ok {
			out = append(out, u)
		}
	}
	return out
}

// trendPoints arma la tendencia del más antiguo al más reciente; meses sin registro valen 0.
func trendPoints(months []inventory.YearMonth, units repository.MonthlyUnits) []dto.TrendPointDTO {
	chrono := inventory.Chronological(months)
	out := make([]dto.TrendPointDTO, 0, len(chrono))
	for _, ym := range chrono {
		u, ok := units[ym]
		out = append(out, dto.TrendPointDTO{Month: ym.Label(), UnitsSold: u, Recorded: ok})
	}
	return out
}

func monthLabels(months []inventory.YearMonth) []string {
	out := make([]string, 0, len(months))
	for _, ym := range months {
		out = append(out, ym.Label())
	}
	return out
}

func toMetricsDTO(m inventory.ReorderMetrics) dto.MetricsDTO {
	status := dto.HistoryStatusOK
	if m.InsufficientHistory() {
		status = dto.HistoryStatusInsufficient
	}
	return dto.MetricsDTO{
		DailyVelocity:  roundMetric(m.DailyVelocity),
		StdDailyDemand: roundMetric(m.StdDailyDemand),
		SafetyStock:    roundMetric(m.SafetyStock),
		ReorderPoint:   roundMetric(m.ReorderPoint),
		OrderQuantity:  roundMetric(m.OrderQuantity),
		OrderUnits:     orderUnits(m.OrderQuantity),
		MonthsObserved: m.SampleSize,
		HistoryStatus:  status,
	}
}

// orderUnits redondea la cantidad a pedir a unidades enteras (mitad al par), acotada a maxQuantity.
func orderUnits(q float64) int {
	r := math.RoundToEven(q)
	switch {
	case r <= 0 || math.IsNaN(r):
		return 0
	case r >= maxQuantity:
		return maxQuantity
	}
	return int(r)
}

func roundMetric(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(metricDecimals)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		SKU:          p.SKU,
		Name:         p.Name,
		LeadTimeDays: p.LeadTimeDays,
		ZValue:       p.ZValue,
		FBAStock:     p.FBAStock,
		InboundStock: p.InboundStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
