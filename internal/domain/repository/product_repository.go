package repository

import (
	"context"

	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las operaciones están acotadas al propietario.
type ProductRepository interface {
	// Upsert crea el producto o actualiza sus parámetros si (owner_id, sku) ya existe.
	Upsert(ctx context.Context, product *entity.Product) error
	GetByOwnerAndSKU(ctx context.Context, ownerID, sku string) (*entity.Product, error)
	// ListByOwner devuelve los productos del propietario, más recientes primero.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error)
	Delete(ctx context.Context, ownerID, sku string) error
}
