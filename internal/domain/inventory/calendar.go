package inventory

import (
	"fmt"
	"time"
)

// Ventanas de meses calendario usadas por la planificación.
const (
	ComputationWindowMonths = 3 // base del cálculo de reorden
	TrendWindowMonths       = 6 // tendencia mostrada al usuario
)

// YearMonth identifica un mes calendario.
type YearMonth struct {
	Year  int
	Month int // 1..12
}

// Label devuelve el mes en formato YYYY-MM.
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// LastNCalendarMonths devuelve los n meses calendario más recientes empezando por el mes de today,
// en orden cronológico inverso. Diciembre sigue a enero retrocediendo el año.
// Solo resuelve identidades de meses; rellenar meses sin datos es tarea del llamador.
func LastNCalendarMonths(n int, today time.Time) []YearMonth {
	if n <= 0 {
		return []YearMonth{}
	}
	y, m := today.Year(), int(today.Month())
	out := make([]YearMonth, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, YearMonth{Year: y, Month: m})
		m--
		if m == 0 {
			m = 12
			y--
		}
	}
	return out
}

// Chronological devuelve una copia de months en orden cronológico (antiguo → reciente).
func Chronological(months []YearMonth) []YearMonth {
	out := make([]YearMonth, len(months))
	for i, ym := range months {
		out[len(months)-1-i] = ym
	}
	return out
}
