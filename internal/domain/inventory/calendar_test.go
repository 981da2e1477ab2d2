package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/replenishment-planner/internal/domain/inventory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestLastNCalendarMonths_CruceDeAnio(t *testing.T) {
	got := inventory.LastNCalendarMonths(3, date(2024, time.January, 15))
	assert.Equal(t, []inventory.YearMonth{
		{Year: 2024, Month: 1},
		{Year: 2023, Month: 12},
		{Year: 2023, Month: 11},
	}, got)
}

func TestLastNCalendarMonths_SeisMesesMismoAnio(t *testing.T) {
	got := inventory.LastNCalendarMonths(6, date(2024, time.August, 31))
	assert.Len(t, got, 6)
	assert.Equal(t, inventory.YearMonth{Year: 2024, Month: 8}, got[0])
	assert.Equal(t, inventory.YearMonth{Year: 2024, Month: 3}, got[5])
}

func TestLastNCalendarMonths_VentanaLarga(t *testing.T) {
	got := inventory.LastNCalendarMonths(25, date(2024, time.March, 1))
	assert.Len(t, got, 25)
	assert.Equal(t, inventory.YearMonth{Year: 2022, Month: 3}, got[24])
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		assert.True(t, cur.Year < prev.Year || (cur.Year == prev.Year && cur.Month == prev.Month-1),
			"%v debe ser el mes anterior a %v", cur, prev)
	}
}

func TestLastNCalendarMonths_NCeroOVacio(t *testing.T) {
	assert.Empty(t, inventory.LastNCalendarMonths(0, date(2024, time.May, 5)))
	assert.Empty(t, inventory.LastNCalendarMonths(-2, date(2024, time.May, 5)))
}

func TestLastNCalendarMonths_Determinista(t *testing.T) {
	today := date(2025, time.December, 31)
	assert.Equal(t, inventory.LastNCalendarMonths(4, today), inventory.LastNCalendarMonths(4, today))
}

func TestYearMonth_Label(t *testing.T) {
	assert.Equal(t, "2023-04", inventory.YearMonth{Year: 2023, Month: 4}.Label())
	assert.Equal(t, "2024-12", inventory.YearMonth{Year: 2024, Month: 12}.Label())
}

func TestChronological_InvierteSinModificar(t *testing.T) {
	months := inventory.LastNCalendarMonths(3, date(2024, time.February, 10))
	chrono := inventory.Chronological(months)

	assert.Equal(t, []inventory.YearMonth{
		{Year: 2023, Month: 12}, {Year: 2024, Month: 1}, {Year: 2024, Month: 2},
	}, chrono)
	assert.Equal(t, inventory.YearMonth{Year: 2024, Month: 2}, months[0], "la entrada no debe modificarse")
}
