package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_id, sku, name, lead_time_days, z_value, fba_stock, inbound_stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Upsert crea el producto o actualiza sus parámetros. En conflicto conserva id y created_at
// originales y los devuelve en product.
func (r *ProductRepo) Upsert(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (owner_id, sku) DO UPDATE SET
			name = EXCLUDED.name,
			lead_time_days = EXCLUDED.lead_time_days,
			z_value = EXCLUDED.z_value,
			fba_stock = EXCLUDED.fba_stock,
			inbound_stock = EXCLUDED.inbound_stock,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.OwnerID, product.SKU, product.Name, product.LeadTimeDays, product.ZValue,
		product.FBAStock, product.InboundStock, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// GetByOwnerAndSKU obtiene un producto del propietario. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByOwnerAndSKU(ctx context.Context, ownerID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 AND sku = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, ownerID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// ListByOwner lista los productos del propietario, última modificación primero.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY updated_at DESC, sku`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el producto del propietario (no-op si no existe).
func (r *ProductRepo) Delete(ctx context.Context, ownerID, sku string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE owner_id = $1 AND sku = $2`, ownerID, sku)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.SKU, &p.Name, &p.LeadTimeDays, &p.ZValue,
		&p.FBAStock, &p.InboundStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
