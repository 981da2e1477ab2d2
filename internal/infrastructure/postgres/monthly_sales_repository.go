package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/domain/inventory"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
)

var _ repository.MonthlySalesRepository = (*MonthlySalesRepo)(nil)

// MonthlySalesRepo implementación del puerto MonthlySalesRepository sobre PostgreSQL.
type MonthlySalesRepo struct {
	q Querier
}

// NewMonthlySalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMonthlySalesRepository(q Querier) *MonthlySalesRepo {
	return &MonthlySalesRepo{q: q}
}

// Upsert inserta la venta del mes o sobrescribe units_sold si ya existía.
func (r *MonthlySalesRepo) Upsert(ctx context.Context, sale *entity.MonthlySale) error {
	query := `
		INSERT INTO monthly_sales (id, owner_id, sku, year, month, units_sold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_id, sku, year, month) DO UPDATE SET
			units_sold = EXCLUDED.units_sold,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.OwnerID, sale.SKU, sale.Year, sale.Month, sale.UnitsSold, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert monthly sale: %w", err)
	}
	return nil
}

// GetUnits devuelve las ventas del SKU en los meses pedidos; los meses sin registro no aparecen.
func (r *MonthlySalesRepo) GetUnits(ctx context.Context, ownerID, sku string, months []inventory.YearMonth) (repository.MonthlyUnits, error) {
	out := repository.MonthlyUnits{}
	if len(months) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT year, month, units_sold FROM monthly_sales
		WHERE owner_id = $1 AND sku = $2 AND (year * 100 + month) = ANY($3)`,
		ownerID, sku, monthKeys(months),
	)
	if err != nil {
		return nil, fmt.Errorf("get monthly units: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ym inventory.YearMonth
		var units int
		if err := rows.Scan(&ym.Year, &ym.Month, &units); err != nil {
			return nil, fmt.Errorf("scan monthly units: %w", err)
		}
		out[ym] = units
	}
	return out, rows.Err()
}

// GetUnitsByOwner devuelve las ventas de todos los SKUs del propietario en los meses pedidos.
func (r *MonthlySalesRepo) GetUnitsByOwner(ctx context.Context, ownerID string, months []inventory.YearMonth) (map[string]repository.MonthlyUnits, error) {
	out := map[string]repository.MonthlyUnits{}
	if len(months) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT sku, year, month, units_sold FROM monthly_sales
		WHERE owner_id = $1 AND (year * 100 + month) = ANY($2)`,
		ownerID, monthKeys(months),
	)
	if err != nil {
		return nil, fmt.Errorf("get owner monthly units: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sku string
		var ym inventory.YearMonth
		var units int
		if err := rows.Scan(&sku, &ym.Year, &ym.Month, &units); err != nil {
			return nil, fmt.Errorf("scan owner monthly units: %w", err)
		}
		if out[sku] == nil {
			out[sku] = repository.MonthlyUnits{}
		}
		out[sku][ym] = units
	}
	return out, rows.Err()
}

// DeleteBySKU elimina todo el historial de ventas del SKU del propietario.
func (r *MonthlySalesRepo) DeleteBySKU(ctx context.Context, ownerID, sku string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM monthly_sales WHERE owner_id = $1 AND sku = $2`, ownerID, sku)
	if err != nil {
		return fmt.Errorf("delete monthly sales: %w", err)
	}
	return nil
}
