package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del historial de ventas usado en el cálculo.
const (
	HistoryStatusOK           = "ok"
	HistoryStatusInsufficient = "insufficient_history" // ningún mes con ventas: sin recomendación
)

// MonthlySaleInput unidades vendidas en un mes calendario.
type MonthlySaleInput struct {
	Year      int `json:"year" validate:"required,min=1,max=9999"`
	Month     int `json:"month" validate:"required,min=1,max=12"`
	UnitsSold int `json:"units_sold" validate:"min=0"`
}

// SaveProductRequest crea o actualiza un SKU junto con cualquier número de meses de ventas.
// Si z_value se omite se usa el valor por defecto configurado.
type SaveProductRequest struct {
	SKU          string             `json:"sku" validate:"required,max=100"`
	Name         string             `json:"name" validate:"max=200"`
	LeadTimeDays int                `json:"lead_time_days" validate:"required,min=1"`
	ZValue       *decimal.Decimal   `json:"z_value"`
	FBAStock     int                `json:"fba_stock" validate:"min=0"`
	InboundStock int                `json:"inbound_stock" validate:"min=0"`
	Sales        []MonthlySaleInput `json:"sales"`
}

// UpsertSalesRequest agrega o sobrescribe meses de ventas de un SKU existente.
type UpsertSalesRequest struct {
	Sales []MonthlySaleInput `json:"sales" validate:"required,min=1"`
}

// CalculateRequest entrada del calculador sin estado: parámetros explícitos y las ventas
// de los meses de la ventana que tienen registro (los meses ausentes no se envían).
type CalculateRequest struct {
	LeadTimeDays int             `json:"lead_time_days" validate:"required,min=1"`
	ZValue       decimal.Decimal `json:"z_value"`
	MonthlyUnits []int           `json:"monthly_units" validate:"max=3"`
	FBAStock     int             `json:"fba_stock" validate:"min=0"`
	InboundStock int             `json:"inbound_stock" validate:"min=0"`
}

// MetricsDTO las cinco métricas de reposición redondeadas a 4 decimales.
// OrderQuantity son las unidades recomendadas a pedir para cubrir los próximos 60 días,
// netas del stock actual y en tránsito.
type MetricsDTO struct {
	DailyVelocity  decimal.Decimal `json:"daily_velocity"`
	StdDailyDemand decimal.Decimal `json:"std_daily_demand"`
	SafetyStock    decimal.Decimal `json:"safety_stock"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	OrderQuantity  decimal.Decimal `json:"order_quantity"`
	OrderUnits     int             `json:"order_units"` // OrderQuantity redondeada a unidades
	MonthsObserved int             `json:"months_observed"`
	HistoryStatus  string          `json:"history_status"`
}

// ProductResponse parámetros de un SKU.
type ProductResponse struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	LeadTimeDays int             `json:"lead_time_days"`
	ZValue       decimal.Decimal `json:"z_value"`
	FBAStock     int             `json:"fba_stock"`
	InboundStock int             `json:"inbound_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TrendPointDTO ventas de un mes en la tendencia de 6 meses. Los meses sin registro valen 0.
type TrendPointDTO struct {
	Month     string `json:"month"` // YYYY-MM
	UnitsSold int    `json:"units_sold"`
	Recorded  bool   `json:"recorded"`
}

// ProductPlanDTO detalle de un SKU: parámetros, ventana de cálculo, métricas y tendencia.
type ProductPlanDTO struct {
	Product       ProductResponse `json:"product"`
	WindowMonths  []string        `json:"window_months"`  // meses de cálculo, del más reciente al más antiguo
	ObservedUnits []int           `json:"observed_units"` // ventas encontradas en esos meses
	Metrics       MetricsDTO      `json:"metrics"`
	Trend         []TrendPointDTO `json:"trend"` // del más antiguo al más reciente
}

// ProductSummaryDTO fila del listado de SKUs y del plan de pedido.
type ProductSummaryDTO struct {
	Product ProductResponse `json:"product"`
	Metrics MetricsDTO      `json:"metrics"`
}

// ProductListResponse listado de SKUs del propietario con sus métricas.
type ProductListResponse struct {
	Items        []ProductSummaryDTO `json:"items"`
	Total        int                 `json:"total"`
	WindowMonths []string            `json:"window_months"`
}

// OrderPlanResponse SKUs con pedido recomendado mayor que cero.
type OrderPlanResponse struct {
	Items              []ProductSummaryDTO `json:"items"`
	Total              int                 `json:"total"`
	HorizonDays        int                 `json:"horizon_days"`
	OrderQuantityLabel string              `json:"order_quantity_label"`
	WindowMonths       []string            `json:"window_months"`
}
