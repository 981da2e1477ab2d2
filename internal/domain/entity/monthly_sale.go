package entity

import "time"

// MonthlySale unidades vendidas de un SKU en un mes calendario.
// Identidad: (OwnerID, SKU, Year, Month); una escritura posterior sobrescribe la anterior.
type MonthlySale struct {
	ID        string
	OwnerID   string
	SKU       string
	Year      int
	Month     int // 1..12
	UnitsSold int
	CreatedAt time.Time
	UpdatedAt time.Time
}
