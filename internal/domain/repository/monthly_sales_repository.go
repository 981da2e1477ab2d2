package repository

import (
	"context"

	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/domain/inventory"
)

// MonthlyUnits ventas por mes calendario. Un mes ausente no tiene entrada.
type MonthlyUnits map[inventory.YearMonth]int

// MonthlySalesRepository define el puerto de persistencia para MonthlySale (DIP).
type MonthlySalesRepository interface {
	// Upsert inserta o sobrescribe la venta de (owner_id, sku, year, month).
	Upsert(ctx context.Context, sale *entity.MonthlySale) error
	// GetUnits devuelve las ventas registradas del SKU para los meses indicados.
	GetUnits(ctx context.Context, ownerID, sku string, months []inventory.YearMonth) (MonthlyUnits, error)
	// GetUnitsByOwner igual que GetUnits pero para todos los SKUs del propietario (clave: SKU).
	GetUnitsByOwner(ctx context.Context, ownerID string, months []inventory.YearMonth) (map[string]MonthlyUnits, error)
	DeleteBySKU(ctx context.Context, ownerID, sku string) error
}
