package inventory

import (
	"math"
	"slices"
)

// Parámetros fijos del motor de reorden.
const (
	DaysPerMonth        = 30.0 // mes fijo de 30 días, independiente del calendario real
	PlanningHorizonDays = 60.0 // horizonte de pedido: 2 meses
)

// ReorderMetrics resultado del motor de reorden. No se persiste: se recalcula en cada consulta.
type ReorderMetrics struct {
	DailyVelocity  float64
	StdDailyDemand float64
	SafetyStock    float64
	ReorderPoint   float64
	OrderQuantity  float64
	SampleSize     int // meses con venta registrada que alimentaron el cálculo
}

// InsufficientHistory indica que no hubo ningún mes con ventas en la ventana.
// En ese caso las métricas valen 0 y no deben leerse como "pedir 0 unidades".
func (m ReorderMetrics) InsufficientHistory() bool {
	return m.SampleSize == 0
}

// ComputeReorderMetrics calcula velocidad diaria, desviación diaria, stock de seguridad,
// punto de reorden y cantidad a pedir (60 días) a partir de las ventas mensuales encontradas.
//
// observedMonthlyUnits contiene solo los meses de la ventana que tienen registro; los meses
// ausentes no se rellenan con cero. La función es total: no valida entradas, solo protege
// la raíz cuadrada con max(1, leadTimeDays).
//
//	H   = promedio(ventas) / 30
//	σd  = stdev muestral(ventas) / 30   (0 si hay menos de 2 meses)
//	SS  = z * σd * √max(1, LT)
//	ROP = H * LT + SS
//	Q   = max(0, H*60 + SS - (FBA + en tránsito))
func ComputeReorderMetrics(
	leadTimeDays int,
	serviceCoefficient float64,
	observedMonthlyUnits []int,
	fbaStock, inboundStock int,
) ReorderMetrics {
	n := len(observedMonthlyUnits)
	if n == 0 {
		return ReorderMetrics{}
	}

	mean := meanOf(observedMonthlyUnits)
	dailyVelocity := mean / DaysPerMonth

	stdDaily := 0.0
	if n >= 2 {
		stdDaily = sampleStdDev(observedMonthlyUnits, mean) / DaysPerMonth
	}

	safetyStock := serviceCoefficient * stdDaily * math.Sqrt(float64(max(1, leadTimeDays)))
	reorderPoint := dailyVelocity*float64(leadTimeDays) + safetyStock
	// los stocks se suman en float64: como int la suma puede desbordar
	onHand := float64(fbaStock) + float64(inboundStock)
	orderQty := math.Max(0.0, dailyVelocity*PlanningHorizonDays+safetyStock-onHand)

	return ReorderMetrics{
		DailyVelocity:  dailyVelocity,
		StdDailyDemand: stdDaily,
		SafetyStock:    safetyStock,
		ReorderPoint:   reorderPoint,
		OrderQuantity:  orderQty,
		SampleSize:     n,
	}
}

func meanOf(values []int) float64 {
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// sampleStdDev desviación estándar muestral (denominador n-1). Requiere len(values) >= 2.
// Suma sobre una copia ordenada para que el resultado no dependa del orden de entrada.
func sampleStdDev(values []int, mean float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	ss := 0.0
	for _, v := range sorted {
		d := float64(v) - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
